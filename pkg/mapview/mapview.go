// Package mapview holds the canonical in-memory collection of memory
// features and the gesture-driven view state. It is headless: the
// rendering engine reads the exported state, it is never called into.
package mapview

import (
	"context"
	"sync"
	"time"
)

// Feature is one memory as the map renders it.
type Feature struct {
	ID        string
	Message   string
	Receiver  string
	Longitude float64
	Latitude  float64
	HasImage  bool
	ImageURL  string
	CreatedAt time.Time
}

// NewMemory carries the form fields of a memory about to be created.
type NewMemory struct {
	Message   string
	Receiver  string
	Longitude float64
	Latitude  float64
	ImagePath string
}

// Gateway is the thin request/response wrapper around the memory store.
type Gateway interface {
	Create(ctx context.Context, memory NewMemory) (Feature, error)
	ListAll(ctx context.Context) ([]Feature, error)
	SearchByReceiver(ctx context.Context, substring string) ([]Feature, error)
}

// ExpansionZoomer answers how far to zoom to expand a cluster. It is
// owned by the external clustering engine.
type ExpansionZoomer interface {
	ExpansionZoom(clusterId int64) (float64, error)
}

// Marker is a single ephemeral coordinate on the map.
type Marker struct {
	Longitude float64
	Latitude  float64
}

// View is the map's state: feature collection, camera, and the two
// pending markers (drag-controlled pin, temporary search marker).
type View struct {
	gateway Gateway
	zoomer  ExpansionZoomer

	mu           sync.Mutex
	features     []Feature
	byId         map[string]struct{}
	loaded       bool
	centerLng    float64
	centerLat    float64
	zoom         float64
	pinMarker    *Marker
	searchMarker *Marker
	detailId     string
}

func NewView(gateway Gateway, zoomer ExpansionZoomer) *View {
	return &View{
		gateway: gateway,
		zoomer:  zoomer,
		byId:    make(map[string]struct{}),
	}
}

// Load populates the feature collection from the store. It runs once;
// later calls are no-ops. The collection is a read-through cache, never
// reconciled against the backend afterward.
func (v *View) Load(ctx context.Context) error {
	v.mu.Lock()
	if v.loaded {
		v.mu.Unlock()
		return nil
	}
	v.mu.Unlock()

	features, err := v.gateway.ListAll(ctx)
	if err != nil {
		return err
	}

	v.mu.Lock()
	defer v.mu.Unlock()
	if v.loaded {
		return nil
	}
	for _, f := range features {
		v.addLocked(f)
	}
	v.loaded = true
	return nil
}

// MergeSearchResults unions fetched results into the collection,
// de-duplicated by identifier. A feature already held locally wins; no
// field-level merge happens.
func (v *View) MergeSearchResults(results []Feature) {
	v.mu.Lock()
	defer v.mu.Unlock()
	for _, f := range results {
		v.addLocked(f)
	}
}

// Append adds a freshly created feature and re-centers the camera on it.
func (v *View) Append(f Feature) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.addLocked(f)
	v.centerLng = f.Longitude
	v.centerLat = f.Latitude
}

// ClickCluster asks the clustering engine for the expansion zoom level
// and moves the camera there.
func (v *View) ClickCluster(clusterId int64, lng, lat float64) error {
	zoom, err := v.zoomer.ExpansionZoom(clusterId)
	if err != nil {
		return err
	}
	v.mu.Lock()
	v.zoom = zoom
	v.centerLng = lng
	v.centerLat = lat
	v.mu.Unlock()
	return nil
}

// ClickFeature opens a leaf point's detail. Opening a detail clears both
// pending markers.
func (v *View) ClickFeature(id string) {
	v.mu.Lock()
	defer v.mu.Unlock()
	if _, ok := v.byId[id]; !ok {
		return
	}
	v.detailId = id
	v.pinMarker = nil
	v.searchMarker = nil
}

// ClickBackground clears the temporary search marker and any open detail.
func (v *View) ClickBackground() {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.searchMarker = nil
	v.detailId = ""
}

// PlacePin drops or moves the drag-controlled pin-placement marker.
func (v *View) PlacePin(lng, lat float64) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.pinMarker = &Marker{Longitude: lng, Latitude: lat}
}

// DragPin follows the pin while the user drags it.
func (v *View) DragPin(lng, lat float64) {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.pinMarker == nil {
		v.pinMarker = &Marker{}
	}
	v.pinMarker.Longitude = lng
	v.pinMarker.Latitude = lat
}

// ClearPin removes the pin-placement marker, e.g. when the form closes.
func (v *View) ClearPin() {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.pinMarker = nil
}

// SetSearchMarker drops the temporary marker for a resolved search
// location. At most one exists at a time.
func (v *View) SetSearchMarker(lng, lat float64) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.searchMarker = &Marker{Longitude: lng, Latitude: lat}
}

// ClearMarkers removes both pending markers. Used when a detail view
// opens or a new search starts.
func (v *View) ClearMarkers() {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.pinMarker = nil
	v.searchMarker = nil
}

// SetCenter moves the camera.
func (v *View) SetCenter(lng, lat float64) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.centerLng = lng
	v.centerLat = lat
}

func (v *View) addLocked(f Feature) {
	if _, ok := v.byId[f.ID]; ok {
		return
	}
	v.byId[f.ID] = struct{}{}
	v.features = append(v.features, f)
}

func (v *View) Features() []Feature {
	v.mu.Lock()
	defer v.mu.Unlock()
	out := make([]Feature, len(v.features))
	copy(out, v.features)
	return out
}

func (v *View) Center() (lng, lat float64) {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.centerLng, v.centerLat
}

func (v *View) Zoom() float64 {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.zoom
}

func (v *View) PinMarker() *Marker {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.pinMarker == nil {
		return nil
	}
	m := *v.pinMarker
	return &m
}

func (v *View) SearchMarker() *Marker {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.searchMarker == nil {
		return nil
	}
	m := *v.searchMarker
	return &m
}

func (v *View) OpenDetail() string {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.detailId
}
