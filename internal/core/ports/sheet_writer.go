package ports

import "context"

// ExportRow is the flat projection of a tracker written to an export file.
type ExportRow struct {
	TrackingCode string
	Name         string
	Status       string
	Carrier      string
	Destination  string
	CreatedAt    string
	Phone        string
	Email        string
	Address      string
}

// ExportHeader is the column order of every export format.
var ExportHeader = []string{
	"Tracking Code", "Name", "Status", "Carrier", "Destination",
	"Created At", "Phone", "Email", "Address",
}

// Values returns the row cells in ExportHeader order.
func (r ExportRow) Values() []string {
	return []string{
		r.TrackingCode, r.Name, r.Status, r.Carrier, r.Destination,
		r.CreatedAt, r.Phone, r.Email, r.Address,
	}
}

// SheetWriter serializes export rows into a single downloadable document.
// A writer either returns the complete document or an error, never a
// partial payload.
type SheetWriter interface {
	Format() string
	Extension() string
	ContentType() string
	Write(ctx context.Context, rows []ExportRow) ([]byte, error)
}
