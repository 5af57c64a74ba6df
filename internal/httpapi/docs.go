package httpapi

// This file carries OpenAPI/Swagger documentation for the façade's
// endpoints; it declares no identifiers of its own.

// createExpression creates a new text.
// @Summary Create a text
// @Description Creates a root, translation, commentary or translation-source Expression
// @Tags texts
// @Accept json
// @Produce json
// @Param request body createExpressionRequest true "Expression creation request"
// @Success 201 {object} domain.Expression
// @Success 200 {object} domain.Expression "Already exists (idempotent by external id)"
// @Failure 400,422 {object} map[string]string
// @Security ApiKeyAuth
// @Router /texts [post]

// createManifestation creates a new edition of a text.
// @Summary Create an edition
// @Description Creates a diplomatic, critical or collated Manifestation, optionally with initial annotation layers
// @Tags editions
// @Accept json
// @Produce json
// @Param id path string true "Expression id"
// @Param request body createManifestationRequest true "Manifestation creation request"
// @Success 201 {object} domain.Manifestation
// @Failure 400,422 {object} map[string]string
// @Security ApiKeyAuth
// @Router /texts/{id}/instances [post]

// editionSegmentRelated walks alignment pairs from a seed span.
// @Summary Find related segments
// @Description Breadth-first traversal across alignment pairs starting from a segment or span
// @Tags editions
// @Produce json
// @Param id path string true "Manifestation id"
// @Param segment_id query string false "Seed segment id (mutually exclusive with span_start/span_end)"
// @Param span_start query int false "Seed span start"
// @Param span_end query int false "Seed span end"
// @Param transform query bool false "Transfer matches onto the peer's segmentation layer"
// @Success 200 {array} domain.Segment
// @Failure 400,404 {object} map[string]string
// @Security ApiKeyAuth
// @Router /editions/{id}/segment-related [get]
