package services

import (
	"fmt"
	"net/http"
)

// ServiceError is a typed error with an HTTP status code.
type ServiceError struct {
	StatusCode int
	Message    string
}

func (e *ServiceError) Error() string { return e.Message }

// ErrCartEmpty signals a checkout attempt on an empty cart. Not a failure:
// the controller turns it into a redirect back to the product list.
var ErrCartEmpty = &ServiceError{StatusCode: http.StatusConflict, Message: "Cart is empty"}

// StockError reports the first cart line whose requested quantity exceeds
// the available stock. Checkout aborts on it and names the product.
type StockError struct {
	ProductName string
}

func (e *StockError) Error() string {
	return fmt.Sprintf("insufficient stock for %s", e.ProductName)
}
