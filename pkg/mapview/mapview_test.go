package mapview

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

type fakeGateway struct {
	features  []Feature
	results   []Feature
	created   []NewMemory
	createErr error
	searchErr error
	listErr   error
	listCalls int
}

func (f *fakeGateway) Create(ctx context.Context, memory NewMemory) (Feature, error) {
	if f.createErr != nil {
		return Feature{}, f.createErr
	}
	f.created = append(f.created, memory)
	return Feature{
		ID:        fmt.Sprintf("created-%d", len(f.created)),
		Message:   memory.Message,
		Receiver:  memory.Receiver,
		Longitude: memory.Longitude,
		Latitude:  memory.Latitude,
	}, nil
}

func (f *fakeGateway) ListAll(ctx context.Context) ([]Feature, error) {
	f.listCalls++
	return f.features, f.listErr
}

func (f *fakeGateway) SearchByReceiver(ctx context.Context, substring string) ([]Feature, error) {
	return f.results, f.searchErr
}

type fakeZoomer struct {
	zoom float64
	err  error
}

func (f *fakeZoomer) ExpansionZoom(clusterId int64) (float64, error) {
	return f.zoom, f.err
}

func TestLoadRunsOnce(t *testing.T) {
	gw := &fakeGateway{features: []Feature{{ID: "a"}, {ID: "b"}}}
	v := NewView(gw, &fakeZoomer{})

	assert.NoError(t, v.Load(context.Background()))
	assert.NoError(t, v.Load(context.Background()))

	assert.Equal(t, 1, gw.listCalls)
	assert.Len(t, v.Features(), 2)
}

func TestMergeSearchResultsDeduplicatesById(t *testing.T) {
	local := Feature{ID: "a", Message: "local copy"}
	gw := &fakeGateway{features: []Feature{local}}
	v := NewView(gw, &fakeZoomer{})
	assert.NoError(t, v.Load(context.Background()))

	v.MergeSearchResults([]Feature{
		{ID: "a", Message: "remote copy"},
		{ID: "b", Message: "fresh"},
	})

	features := v.Features()
	assert.Len(t, features, 2)
	// First seen wins: the held local feature is not overwritten.
	assert.Equal(t, "local copy", features[0].Message)
	assert.Equal(t, "b", features[1].ID)
}

func TestClickFeatureClearsBothMarkers(t *testing.T) {
	gw := &fakeGateway{features: []Feature{{ID: "a"}}}
	v := NewView(gw, &fakeZoomer{})
	assert.NoError(t, v.Load(context.Background()))

	v.PlacePin(1, 2)
	v.SetSearchMarker(3, 4)

	v.ClickFeature("a")

	assert.Nil(t, v.PinMarker())
	assert.Nil(t, v.SearchMarker())
	assert.Equal(t, "a", v.OpenDetail())
}

func TestClickUnknownFeatureIsIgnored(t *testing.T) {
	v := NewView(&fakeGateway{}, &fakeZoomer{})
	v.PlacePin(1, 2)

	v.ClickFeature("missing")

	assert.NotNil(t, v.PinMarker())
	assert.Empty(t, v.OpenDetail())
}

func TestClickBackgroundClearsSearchMarkerOnly(t *testing.T) {
	v := NewView(&fakeGateway{}, &fakeZoomer{})
	v.PlacePin(1, 2)
	v.SetSearchMarker(3, 4)

	v.ClickBackground()

	assert.NotNil(t, v.PinMarker())
	assert.Nil(t, v.SearchMarker())
}

func TestClickClusterZoomsAndCenters(t *testing.T) {
	v := NewView(&fakeGateway{}, &fakeZoomer{zoom: 12.5})

	assert.NoError(t, v.ClickCluster(7, 10, 20))

	assert.Equal(t, 12.5, v.Zoom())
	lng, lat := v.Center()
	assert.Equal(t, 10.0, lng)
	assert.Equal(t, 20.0, lat)
}

func TestClickClusterPropagatesZoomerError(t *testing.T) {
	v := NewView(&fakeGateway{}, &fakeZoomer{err: errors.New("boom")})
	v.SetCenter(1, 1)

	assert.Error(t, v.ClickCluster(7, 10, 20))

	lng, lat := v.Center()
	assert.Equal(t, 1.0, lng)
	assert.Equal(t, 1.0, lat)
}

func TestAppendRecenters(t *testing.T) {
	v := NewView(&fakeGateway{}, &fakeZoomer{})

	v.Append(Feature{ID: "new", Longitude: 100, Latitude: -30})

	assert.Len(t, v.Features(), 1)
	lng, lat := v.Center()
	assert.Equal(t, 100.0, lng)
	assert.Equal(t, -30.0, lat)
}

func TestDragPinMovesMarker(t *testing.T) {
	v := NewView(&fakeGateway{}, &fakeZoomer{})
	v.PlacePin(1, 2)
	v.DragPin(5, 6)

	pin := v.PinMarker()
	assert.Equal(t, 5.0, pin.Longitude)
	assert.Equal(t, 6.0, pin.Latitude)
}
