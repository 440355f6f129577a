package api

import (
	"github.com/JaimeStill/iris/internal/classified"
	"github.com/JaimeStill/iris/internal/datasets"
	"github.com/JaimeStill/iris/internal/samples"
	"github.com/JaimeStill/iris/pkg/routes"
)

// Domain holds all domain systems that comprise the API.
type Domain struct {
	Samples    samples.System
	Classified classified.System
	Datasets   datasets.System

	maxUpload int64
}

// NewDomain wires the domain systems over one shared connection pool.
// Classified and datasets both resolve samples through the samples system.
func NewDomain(rt *Runtime) *Domain {
	sampleSys := samples.New(rt.DB, rt.Logger, rt.Pagination)

	return &Domain{
		Samples:    sampleSys,
		Classified: classified.New(rt.DB, sampleSys, rt.Logger, rt.Pagination),
		Datasets:   datasets.New(rt.DB, rt.Storage, sampleSys, rt.Logger, rt.Pagination),
		maxUpload:  rt.MaxUpload,
	}
}

// Groups returns the route groups of every domain system.
func (d *Domain) Groups() []routes.Group {
	return []routes.Group{
		d.Samples.Handler().Routes(),
		d.Classified.Handler().Routes(),
		d.Datasets.Handler(d.maxUpload).Routes(),
	}
}
