package maplayer

import (
	"strconv"
	"strings"
	"time"
)

const dateLayout = "2006-01-02"

// PopupField is one labeled line of a marker popup.
type PopupField struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

// Popup is the presentation of a marker's source record. Empty fields are omitted.
type Popup struct {
	Kind   Kind         `json:"kind"`
	Title  string       `json:"title"`
	Fields []PopupField `json:"fields,omitempty"`
}

// PopupFor renders the popup for a point of interest according to its kind.
func PopupFor(poi PointOfInterest) Popup {
	switch p := poi.(type) {
	case *Highlight:
		return newPopup(KindHighlight, p.Title,
			PopupField{"Description", p.Description},
			PopupField{"Rating", formatRating(p.Rating)},
			PopupField{"Duration", p.Duration},
			PopupField{"Price", strings.Repeat("$", p.PriceLevel)},
			PopupField{"Address", p.Address},
		)
	case *Accommodation:
		return newPopup(KindAccommodation, p.Name,
			PopupField{"Type", p.Type},
			PopupField{"Status", p.Status},
			PopupField{"Stay", formatStay(p.CheckIn, p.CheckOut)},
			PopupField{"Address", p.Address},
		)
	case *Event:
		return newPopup(KindEvent, p.Name,
			PopupField{"Type", p.Type},
			PopupField{"Venue", p.Venue},
			PopupField{"Date", formatDate(p.Date)},
		)
	default:
		return Popup{}
	}
}

func newPopup(kind Kind, title string, fields ...PopupField) Popup {
	popup := Popup{Kind: kind, Title: title}
	for _, field := range fields {
		if field.Value != "" {
			popup.Fields = append(popup.Fields, field)
		}
	}

	return popup
}

func formatRating(rating *float64) string {
	if rating == nil {
		return ""
	}

	return strconv.FormatFloat(*rating, 'f', 1, 64) + "/5"
}

func formatDate(t *time.Time) string {
	if t == nil {
		return ""
	}

	return t.Format(dateLayout)
}

func formatStay(checkIn, checkOut *time.Time) string {
	switch {
	case checkIn != nil && checkOut != nil:
		return formatDate(checkIn) + " - " + formatDate(checkOut)
	case checkIn != nil:
		return "from " + formatDate(checkIn)
	case checkOut != nil:
		return "until " + formatDate(checkOut)
	default:
		return ""
	}
}
