package mapview

import (
	"context"
	"strings"

	"memory-map-be/internal/pkg/logger"
)

// Form holds the pin-placement form fields. ImagePath optionally points
// at a local file to attach.
type Form struct {
	Message   string
	Receiver  string
	ImagePath string
}

// Panel composes the search box output and the store gateway into the
// user-visible form and result state. It implements searchbox.Sink so a
// resolved location moves the camera and drops the temporary marker.
type Panel struct {
	view    *View
	gateway Gateway
	logger  logger.ILogger

	Form    Form
	Results []Feature
	Message string
}

func NewPanel(view *View, gateway Gateway, log logger.ILogger) *Panel {
	return &Panel{
		view:    view,
		gateway: gateway,
		logger:  log,
	}
}

// LocationSelected implements searchbox.Sink.
func (p *Panel) LocationSelected(lng, lat float64) {
	p.view.SetCenter(lng, lat)
}

// TemporaryMarkerPlaced implements searchbox.Sink.
func (p *Panel) TemporaryMarkerPlaced(lng, lat float64) {
	p.view.SetSearchMarker(lng, lat)
}

// SearchReceiver fetches memories addressed to the given recipient and
// merges them into the map's collection. Backend failures degrade to an
// empty result list, they are never surfaced as a blocking error.
func (p *Panel) SearchReceiver(ctx context.Context, substring string) []Feature {
	if strings.TrimSpace(substring) == "" {
		p.Results = nil
		return nil
	}

	// Starting a search clears any pending markers.
	p.view.ClearMarkers()

	results, err := p.gateway.SearchByReceiver(ctx, substring)
	if err != nil {
		p.logger.Warn("panel", "receiver search failed", map[string]interface{}{
			"receiver": substring,
			"error":    err.Error(),
		})
		p.Results = nil
		return nil
	}

	p.view.MergeSearchResults(results)
	p.Results = results
	return results
}

// Submit validates the form against the current pin position, creates
// the memory, and appends the created feature to the map.
func (p *Panel) Submit(ctx context.Context) (*Feature, error) {
	pin := p.view.PinMarker()
	if pin == nil {
		p.Message = "place a pin on the map first"
		return nil, nil
	}
	if strings.TrimSpace(p.Form.Message) == "" {
		p.Message = "message is required"
		return nil, nil
	}
	if strings.TrimSpace(p.Form.Receiver) == "" {
		p.Message = "receiver is required"
		return nil, nil
	}

	created, err := p.gateway.Create(ctx, NewMemory{
		Message:   p.Form.Message,
		Receiver:  p.Form.Receiver,
		Longitude: pin.Longitude,
		Latitude:  pin.Latitude,
		ImagePath: p.Form.ImagePath,
	})
	if err != nil {
		p.logger.Warn("panel", "memory create failed", map[string]interface{}{
			"error": err.Error(),
		})
		p.Message = "failed to save memory, try again"
		return nil, err
	}

	p.view.Append(created)
	p.view.ClearPin()
	p.Form = Form{}
	p.Message = ""
	return &created, nil
}
