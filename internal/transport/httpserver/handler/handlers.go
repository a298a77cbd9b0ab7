package handler

import (
	accountsdomain "family-records-go/internal/domain/accounts"
	familydomain "family-records-go/internal/domain/family"
	locationdomain "family-records-go/internal/domain/location"
	"family-records-go/internal/export"
	"family-records-go/internal/transport/httpserver/middleware"
	"family-records-go/pkg/hashid"
	"family-records-go/pkg/logger"
)

type Handlers struct {
	Accounts  *accountsdomain.Service
	Locations *locationdomain.Service
	Families  *familydomain.Service

	exporter *export.Exporter
	codec    *hashid.Codec
	auth     *middleware.JWTAuth
	pageSize int
	log      logger.Logger
}

func New(
	accounts *accountsdomain.Service,
	locations *locationdomain.Service,
	families *familydomain.Service,
	exporter *export.Exporter,
	codec *hashid.Codec,
	auth *middleware.JWTAuth,
	pageSize int,
	log logger.Logger,
) *Handlers {
	if pageSize < 1 {
		pageSize = 10
	}
	return &Handlers{
		Accounts:  accounts,
		Locations: locations,
		Families:  families,
		exporter:  exporter,
		codec:     codec,
		auth:      auth,
		pageSize:  pageSize,
		log:       log,
	}
}
