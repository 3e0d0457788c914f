package handler

import "pilgrim-testimonies/internal/service"

type Handlers struct {
	Testimony *TestimonyHandler
	Display   *DisplayHandler
	Lead      *LeadHandler
}

func NewHandlers(services *service.Services) *Handlers {
	return &Handlers{
		Testimony: NewTestimonyHandler(services.Testimony),
		Display:   NewDisplayHandler(services.Display),
		Lead:      NewLeadHandler(services.Lead),
	}
}
