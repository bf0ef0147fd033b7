package validation

import (
	"fmt"
	"regexp"

	"github.com/Raymond9734/smallbiz-crm/internal/models"
)

var (
	nameChars  = regexp.MustCompile(`^[a-zA-Z0-9\s.,'-]+$`)
	phoneChars = regexp.MustCompile(`^[0-9+\-\s()]+$`)
)

var orderStatuses = []string{
	models.OrderStatusPending,
	models.OrderStatusProcessing,
	models.OrderStatusCompleted,
	models.OrderStatusCancelled,
}

// Customer validates create and full-update payloads for customers.
var Customer = New(
	RequiredString("name", "Name is required",
		MinLen(models.CustomerNameMinLen, "Name must be between 2 and 255 characters"),
		MaxLen(models.CustomerNameMaxLen, "Name must be between 2 and 255 characters"),
		Matches(nameChars, "Name contains invalid characters"),
	),
	OptionalString("phone",
		Matches(phoneChars, "Phone number contains invalid characters"),
		MaxLen(models.CustomerPhoneMaxLen, "Phone number must be less than 50 characters"),
	),
	OptionalString("email",
		Email("Invalid email format"),
		MaxLen(models.CustomerEmailMaxLen, "Email must be less than 255 characters"),
	),
	OptionalString("address",
		MaxLen(models.CustomerAddressMaxLen, "Address must be less than 1000 characters"),
	),
	TagList("tags", models.CustomerMaxTags),
	OptionalString("notes",
		MaxLen(models.CustomerNotesMaxLen, "Notes must be less than 5000 characters"),
	),
)

// Order validates order creation payloads.
var Order = New(
	PositiveInt("customer_id", "Customer ID must be a positive integer"),
	RequiredString("order_date", "Order date is required",
		CalendarDate("Order date must be a valid date (ISO 8601 format)"),
	),
	NonNegativeNumber("total_amount", "Total amount must be a positive number"),
	MaxNumber("total_amount", models.OrderTotalMax, "Total amount must not exceed 999999999999.99"),
	OptionalString("status",
		OneOf(orderStatuses, fmt.Sprintf("Invalid status value (allowed: %v)", orderStatuses)),
	),
	OptionalString("items",
		MaxLen(models.OrderItemsMaxLen, "Items must be less than 5000 characters"),
	),
	OptionalString("notes",
		MaxLen(models.OrderNotesMaxLen, "Notes must be less than 5000 characters"),
	),
)

// Followup validates followup creation payloads.
var Followup = New(
	PositiveInt("customer_id", "Customer ID must be a positive integer"),
	RequiredString("due_date", "Due date is required",
		CalendarDate("Due date must be a valid date (ISO 8601 format)"),
	),
	OptionalString("message",
		MaxLen(models.FollowupMessageMaxLen, "Message must be less than 2000 characters"),
	),
)
