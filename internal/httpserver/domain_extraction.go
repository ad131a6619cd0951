package httpserver

import (
	"context"

	"github.com/gin-gonic/gin"

	extractionHTTP "meeting-archaeologist/internal/extraction/delivery/http"
)

// setupExtractionDomain wires the extraction handler and registers
// POST /api/v1/parse.
func (srv HTTPServer) setupExtractionDomain(ctx context.Context, api *gin.RouterGroup) error {
	h := extractionHTTP.New(srv.l, srv.extractionUC, !srv.environment.IsProduction())

	extractionHTTP.RegisterRoutes(api, h, srv.mw)

	srv.l.Infof(ctx, "Extraction domain registered")
	return nil
}
