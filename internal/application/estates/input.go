package estates

import (
	"strconv"
	"time"

	"estates-backend/internal/pkg/validation"
)

// EstateInput is the admin form payload for create and update.
type EstateInput struct {
	Title        string     `json:"title" validate:"min=5"`
	City         string     `json:"city" validate:"required"`
	Location     string     `json:"location" validate:"min=5"`
	Type         string     `json:"type" validate:"required"`
	Price        float64    `json:"price" validate:"gte=1"`
	IsForRent    bool       `json:"isForRent"`
	Area         float64    `json:"area" validate:"gte=1"`
	Description  string     `json:"description" validate:"min=10"`
	Zoning       string     `json:"zoning" validate:"required"`
	Bedrooms     float64    `json:"bedrooms" validate:"gte=0"`
	Bathrooms    float64    `json:"bathrooms" validate:"gte=0"`
	PropertyCode string     `json:"propertyCode,omitempty"`
	VideoURL     string     `json:"videoUrl" validate:"required,url"`
	Agent        AgentInput `json:"agent"`
	Features     []string   `json:"features" validate:"min=1"`
	Utilities    []string   `json:"utilities" validate:"min=1"`
	Documents    []string   `json:"documents" validate:"min=1"`
	Images       []string   `json:"images" validate:"min=1"`
	Image        string     `json:"image,omitempty"`
	CreatedAt    string     `json:"createdAt,omitempty"`
}

type AgentInput struct {
	Name  string `json:"name" validate:"min=3"`
	Phone string `json:"phone" validate:"min=7"`
	Email string `json:"email" validate:"email"`
}

var inputMessages = validation.Messages{
	"title":             "El título debe tener al menos 5 caracteres",
	"city":              "La ciudad es obligatoria",
	"location":          "La dirección debe tener al menos 5 caracteres",
	"type":              "El tipo de propiedad es obligatorio",
	"price":             "El precio debe ser mayor que 0",
	"area":              "El área debe ser mayor que 0",
	"description":       "La descripción debe tener al menos 10 caracteres",
	"zoning":            "La zonificación es obligatoria",
	"bedrooms":          "El número de habitaciones es obligatorio",
	"bathrooms":         "El número de baños es obligatorio",
	"videoUrl.required": "La URL del video es obligatoria",
	"videoUrl.url":      "La URL del video debe ser válida",
	"agent.name":        "El nombre del agente es obligatorio",
	"agent.phone":       "El teléfono del agente es obligatorio",
	"agent.email":       "El email del agente debe ser válido",
	"features":          "Debe incluir al menos una característica",
	"utilities":         "Debe incluir al menos un servicio",
	"documents":         "Debe incluir al menos un documento",
	"images":            "Debe incluir al menos una imagen",
}

// syncImages keeps the legacy cover image and the gallery consistent.
func (in *EstateInput) syncImages() {
	if in.Image != "" && len(in.Images) == 0 {
		in.Images = []string{in.Image}
	}
	if len(in.Images) > 0 && in.Image == "" {
		in.Image = in.Images[0]
	}
}

// Validate returns a validation.FieldErrors when the form is incomplete.
func (in EstateInput) Validate() error {
	in.syncImages()
	return validation.Struct(in, inputMessages)
}

// generatePropertyCode builds "PROP-" plus the last six digits of the unix millis.
func generatePropertyCode(now time.Time) string {
	ms := strconv.FormatInt(now.UnixMilli(), 10)
	if len(ms) > 6 {
		ms = ms[len(ms)-6:]
	}
	return "PROP-" + ms
}
