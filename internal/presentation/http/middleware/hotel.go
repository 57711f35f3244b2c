package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sangkips/hotelpos-api/internal/domain/repository"
	"github.com/sangkips/hotelpos-api/internal/presentation/http/dto/response"
)

// HotelParam is the route parameter naming the hotel a request works on
const HotelParam = "hotel_id"

// HotelMiddleware resolves the :hotel_id path parameter and scopes the
// request to that hotel.
func HotelMiddleware(hotelRepo repository.HotelRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		hotelID, err := uuid.Parse(c.Param(HotelParam))
		if err != nil {
			response.BadRequest(c, "Invalid hotel ID")
			c.Abort()
			return
		}

		hotel, err := hotelRepo.GetByID(c.Request.Context(), hotelID)
		if err != nil {
			response.Error(c, err)
			c.Abort()
			return
		}
		if hotel == nil {
			response.NotFound(c, "Hotel not found")
			c.Abort()
			return
		}

		// Gin context for middleware, request context for services and repositories.
		c.Set("hotel_id", hotel.ID)
		c.Set("hotel", hotel)
		c.Request = c.Request.WithContext(repository.WithHotel(c.Request.Context(), hotel.ID))

		c.Next()
	}
}

// GetHotelID retrieves the hotel ID from gin context
func GetHotelID(c *gin.Context) uuid.UUID {
	hotelID, exists := c.Get("hotel_id")
	if !exists {
		return uuid.Nil
	}
	id, ok := hotelID.(uuid.UUID)
	if !ok {
		return uuid.Nil
	}
	return id
}
