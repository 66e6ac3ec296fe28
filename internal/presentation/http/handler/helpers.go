package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// GetAccountID extracts the account ID from the Gin context
func GetAccountID(c *gin.Context) *uuid.UUID {
	accountIDVal, exists := c.Get("account_id")
	if !exists {
		return nil
	}
	accountID, ok := accountIDVal.(uuid.UUID)
	if !ok {
		return nil
	}
	return &accountID
}

// GetAccountEmail extracts the account email from the Gin context
func GetAccountEmail(c *gin.Context) string {
	email, exists := c.Get("account_email")
	if !exists {
		return ""
	}
	return email.(string)
}

// toPaise converts a decimal amount from the JSON boundary to integer paise
func toPaise(amount float64) int64 {
	if amount < 0 {
		return 0
	}
	return decimal.NewFromFloat(amount).Mul(decimal.NewFromInt(100)).Round(0).IntPart()
}
