package server

import (
	"bytes"
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/bwmarrin/snowflake"
	"github.com/gin-gonic/gin"
	quotedomain "github.com/linguasign/certiq/internal/quote/domain"
)

const headerActor = "X-Actor-Id"

func parseID(c *gin.Context, param, field string) (snowflake.ID, bool) {
	id, err := snowflake.ParseString(strings.TrimSpace(c.Param(param)))
	if err != nil {
		AbortWithError(c, newValidationError(field, "invalid_"+field, "invalid "+field))
		return 0, false
	}
	return id, true
}

func actorFrom(c *gin.Context) *string {
	actor := strings.TrimSpace(c.GetHeader(headerActor))
	if actor == "" {
		return nil
	}
	return &actor
}

func (s *Server) GetQuote(c *gin.Context) {
	quoteID, ok := parseID(c, "quoteId", "quote_id")
	if !ok {
		return
	}

	view, err := s.quoteSvc.GetQuote(c.Request.Context(), quoteID)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": view})
}

type listActivityQuery struct {
	Limit int `form:"limit"`
}

func (s *Server) ListQuoteActivity(c *gin.Context) {
	quoteID, ok := parseID(c, "quoteId", "quote_id")
	if !ok {
		return
	}

	var query listActivityQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	entries, err := s.auditSvc.ListByTarget(c.Request.Context(), quoteID.String(), query.Limit)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": entries})
}

type calculateDeliveryRequest struct {
	LocationID *string `json:"location_id"`
}

func (s *Server) CalculateDelivery(c *gin.Context) {
	quoteID, ok := parseID(c, "quoteId", "quote_id")
	if !ok {
		return
	}

	var req calculateDeliveryRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			AbortWithError(c, invalidRequestError())
			return
		}
	}

	var locationID *snowflake.ID
	if req.LocationID != nil && strings.TrimSpace(*req.LocationID) != "" {
		parsed, err := snowflake.ParseString(strings.TrimSpace(*req.LocationID))
		if err != nil {
			AbortWithError(c, newValidationError("location_id", "invalid_location_id", "invalid location_id"))
			return
		}
		locationID = &parsed
	}

	result := s.quoteSvc.Enrich(c.Request.Context(), quoteID, locationID)
	if result.Err != nil {
		AbortWithError(c, result.Err)
		return
	}
	if result.NotReady {
		c.JSON(http.StatusOK, gin.H{"success": false, "reason": "results_not_ready"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":  true,
		"delivery": result.Delivery,
		"results":  result.Results,
	})
}

type createLineItemRequest struct {
	DocumentName   string  `json:"document_name"`
	BillablePages  float64 `json:"billable_pages"`
	UnitRate       float64 `json:"unit_rate"`
	SourceLanguage *string `json:"source_language"`
	TargetLanguage *string `json:"target_language"`
}

func (s *Server) CreateManualLineItem(c *gin.Context) {
	quoteID, ok := parseID(c, "quoteId", "quote_id")
	if !ok {
		return
	}

	var req createLineItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	result, err := s.quoteSvc.CreateManualLineItem(c.Request.Context(), quoteID, quotedomain.CreateLineItemInput{
		DocumentName:   strings.TrimSpace(req.DocumentName),
		BillablePages:  req.BillablePages,
		UnitRate:       req.UnitRate,
		SourceLanguage: req.SourceLanguage,
		TargetLanguage: req.TargetLanguage,
	}, actorFrom(c))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"data": result})
}

func (s *Server) UpdateLineItem(c *gin.Context) {
	quoteID, ok := parseID(c, "quoteId", "quote_id")
	if !ok {
		return
	}
	lineItemID, ok := parseID(c, "lineItemId", "line_item_id")
	if !ok {
		return
	}

	var body map[string]json.RawMessage
	if err := c.ShouldBindJSON(&body); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	result, err := s.quoteSvc.UpdateLineItem(c.Request.Context(), quoteID, lineItemID, buildLineItemPatch(body), actorFrom(c))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": result})
}

// buildLineItemPatch treats key presence as intent: an absent key leaves the
// field alone, an explicit null clears it.
func buildLineItemPatch(body map[string]json.RawMessage) quotedomain.LineItemPatch {
	return quotedomain.LineItemPatch{
		BillablePages:       patchFloat(body, "billable_pages"),
		UnitRate:            patchFloat(body, "unit_rate"),
		UnitRateOverride:    patchFloat(body, "unit_rate_override"),
		OverrideReason:      patchString(body, "override_reason"),
		CertificationType:   patchString(body, "certification_type"),
		CertificationAmount: patchFloat(body, "certification_amount"),
		SourceLanguage:      patchString(body, "source_language"),
		TargetLanguage:      patchString(body, "target_language"),
	}
}

func isNullToken(raw json.RawMessage) bool {
	return string(bytes.TrimSpace(raw)) == "null"
}

func patchFloat(body map[string]json.RawMessage, key string) quotedomain.OptionalFloat {
	raw, ok := body[key]
	if !ok {
		return quotedomain.OptionalFloat{}
	}
	// json.Unmarshal leaves the target untouched on a null token, so the
	// token has to be recognized before decoding or null would read as 0.
	if isNullToken(raw) {
		return quotedomain.OptionalFloat{Set: true, Value: nil}
	}

	var number float64
	if err := json.Unmarshal(raw, &number); err == nil {
		return quotedomain.OptionalFloat{Set: true, Value: &number}
	}

	// Tolerate numeric strings from older admin clients.
	var text string
	if err := json.Unmarshal(raw, &text); err == nil {
		if parsed, err := strconv.ParseFloat(strings.TrimSpace(text), 64); err == nil {
			return quotedomain.OptionalFloat{Set: true, Value: &parsed}
		}
	}

	return quotedomain.OptionalFloat{Set: true, Value: nil}
}

func patchString(body map[string]json.RawMessage, key string) quotedomain.OptionalString {
	raw, ok := body[key]
	if !ok {
		return quotedomain.OptionalString{}
	}
	if isNullToken(raw) {
		return quotedomain.OptionalString{Set: true, Value: nil}
	}

	var text string
	if err := json.Unmarshal(raw, &text); err == nil {
		return quotedomain.OptionalString{Set: true, Value: &text}
	}

	return quotedomain.OptionalString{Set: true, Value: nil}
}

type updateStateRequest struct {
	State string `json:"state"`
}

func (s *Server) UpdateQuoteState(c *gin.Context) {
	quoteID, ok := parseID(c, "quoteId", "quote_id")
	if !ok {
		return
	}

	var req updateStateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}
	if strings.TrimSpace(req.State) == "" {
		AbortWithError(c, newValidationError("state", "invalid_state", "state is required"))
		return
	}

	result, err := s.quoteSvc.ApplyTransition(c.Request.Context(), quoteID, req.State, actorFrom(c))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": result})
}
