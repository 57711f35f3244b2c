package handler

import (
	"errors"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/sangkips/hotelpos-api/internal/presentation/http/dto/response"
	"github.com/sangkips/hotelpos-api/internal/presentation/http/middleware"
	"github.com/sangkips/hotelpos-api/pkg/apperror"
	"github.com/sangkips/hotelpos-api/pkg/pagination"
)

const dateLayout = "2006-01-02"

// bindJSON binds the request body into req and writes the error response
// when that fails.
func bindJSON(c *gin.Context, req interface{}) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		bindError(c, err)
		return false
	}
	return true
}

// bindQuery is bindJSON for the query string.
func bindQuery(c *gin.Context, req interface{}) bool {
	if err := c.ShouldBindQuery(req); err != nil {
		bindError(c, err)
		return false
	}
	return true
}

func bindError(c *gin.Context, err error) {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		response.ValidationError(c, fieldErrors(verrs))
		return
	}
	response.BadRequest(c, "Invalid request body: "+err.Error())
}

// paramID parses the uuid path parameter name.
func paramID(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		response.BadRequest(c, "Invalid "+name)
		return uuid.Nil, false
	}
	return id, true
}

// pageParams reads ?page=&per_page=, ignoring values that do not parse.
func pageParams(c *gin.Context) pagination.Params {
	var p pagination.Params
	p.Page, _ = strconv.Atoi(c.Query("page"))
	p.PerPage, _ = strconv.Atoi(c.Query("per_page"))
	p.Normalize()
	return p
}

// parseDate parses a calendar date that binding already validated.
func parseDate(s string) time.Time {
	t, _ := time.Parse(dateLayout, s)
	return t
}

func optionalDate(s *string) *time.Time {
	if s == nil || *s == "" {
		return nil
	}
	t := parseDate(*s)
	return &t
}

func datePtr(s string) *time.Time {
	return optionalDate(&s)
}

func optionalUUID(s *string) *uuid.UUID {
	if s == nil || *s == "" {
		return nil
	}
	id, err := uuid.Parse(*s)
	if err != nil {
		return nil
	}
	return &id
}

// expectedVersion returns the booking version the client last read. The
// X-Booking-Version header wins over the body.
func expectedVersion(c *gin.Context, body int) (int, bool) {
	header := c.GetHeader(middleware.BookingVersionHeader)
	if header == "" {
		return body, true
	}
	v, err := strconv.Atoi(header)
	if err != nil || v < 0 {
		response.Error(c, apperror.NewBadRequestError("Invalid "+middleware.BookingVersionHeader+" header"))
		return 0, false
	}
	return v, true
}

// hotelID returns the hotel the request is scoped to.
func hotelID(c *gin.Context) uuid.UUID {
	return middleware.GetHotelID(c)
}
