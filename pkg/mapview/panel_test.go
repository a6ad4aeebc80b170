package mapview

import (
	"context"
	"errors"
	"testing"

	"memory-map-be/internal/pkg/logger"

	"github.com/stretchr/testify/assert"
)

func newTestPanel(gw *fakeGateway) (*Panel, *View) {
	v := NewView(gw, &fakeZoomer{})
	return NewPanel(v, gw, logger.NewNopLogger()), v
}

func TestPanelImplementsSink(t *testing.T) {
	p, v := newTestPanel(&fakeGateway{})

	p.LocationSelected(2.35, 48.85)
	p.TemporaryMarkerPlaced(2.35, 48.85)

	lng, lat := v.Center()
	assert.Equal(t, 2.35, lng)
	assert.Equal(t, 48.85, lat)
	marker := v.SearchMarker()
	assert.NotNil(t, marker)
	assert.Equal(t, 2.35, marker.Longitude)
}

func TestSearchReceiverMergesAndClearsMarkers(t *testing.T) {
	gw := &fakeGateway{results: []Feature{{ID: "a", Receiver: "alice"}}}
	p, v := newTestPanel(gw)
	v.PlacePin(1, 2)
	v.SetSearchMarker(3, 4)

	results := p.SearchReceiver(context.Background(), "alice")

	assert.Len(t, results, 1)
	assert.Len(t, v.Features(), 1)
	assert.Nil(t, v.PinMarker())
	assert.Nil(t, v.SearchMarker())
}

func TestSearchReceiverDegradesOnError(t *testing.T) {
	gw := &fakeGateway{searchErr: errors.New("backend down")}
	p, v := newTestPanel(gw)

	results := p.SearchReceiver(context.Background(), "alice")

	assert.Nil(t, results)
	assert.Empty(t, v.Features())
}

func TestSearchReceiverEmptyQueryNoCall(t *testing.T) {
	gw := &fakeGateway{searchErr: errors.New("should not be called")}
	p, _ := newTestPanel(gw)

	assert.Nil(t, p.SearchReceiver(context.Background(), "   "))
}

func TestSubmitRequiresPinAndFields(t *testing.T) {
	gw := &fakeGateway{}
	p, v := newTestPanel(gw)

	created, err := p.Submit(context.Background())
	assert.NoError(t, err)
	assert.Nil(t, created)
	assert.NotEmpty(t, p.Message)

	v.PlacePin(10, 20)
	p.Form.Message = "hi"
	created, err = p.Submit(context.Background())
	assert.NoError(t, err)
	assert.Nil(t, created)
	assert.Equal(t, "receiver is required", p.Message)

	assert.Empty(t, gw.created)
}

func TestSubmitCreatesAppendsAndResets(t *testing.T) {
	gw := &fakeGateway{}
	p, v := newTestPanel(gw)

	v.PlacePin(10, 20)
	p.Form.Message = "hi"
	p.Form.Receiver = "bob"

	created, err := p.Submit(context.Background())
	assert.NoError(t, err)
	assert.NotNil(t, created)
	assert.Equal(t, "bob", created.Receiver)
	assert.Equal(t, 10.0, created.Longitude)

	assert.Len(t, v.Features(), 1)
	lng, lat := v.Center()
	assert.Equal(t, 10.0, lng)
	assert.Equal(t, 20.0, lat)
	assert.Nil(t, v.PinMarker())
	assert.Empty(t, p.Form.Message)
	assert.Empty(t, p.Message)
}

func TestSubmitCreateFailureKeepsForm(t *testing.T) {
	gw := &fakeGateway{createErr: errors.New("boom")}
	p, v := newTestPanel(gw)

	v.PlacePin(10, 20)
	p.Form.Message = "hi"
	p.Form.Receiver = "bob"

	created, err := p.Submit(context.Background())
	assert.Error(t, err)
	assert.Nil(t, created)
	assert.Equal(t, "hi", p.Form.Message)
	assert.NotEmpty(t, p.Message)
	assert.Empty(t, v.Features())
}
