package validation

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Raymond9734/smallbiz-crm/internal/models"
)

func payload(t *testing.T, body string) Payload {
	t.Helper()
	dec := json.NewDecoder(strings.NewReader(body))
	dec.UseNumber()
	var p Payload
	require.NoError(t, dec.Decode(&p))
	return p
}

func TestCustomer_Valid(t *testing.T) {
	p := payload(t, `{"name":"Budi Santoso","phone":"0812-3456-7890","email":"Budi@Example.com","tags":["langganan","rewel"],"notes":"VIP"}`)
	assert.NoError(t, Customer.Validate(p))
}

func TestCustomer_NameLength(t *testing.T) {
	for _, name := range []string{"A", strings.Repeat("a", 256)} {
		p := Payload{"name": name}
		errs := Extract(Customer.Validate(p))
		require.NotNil(t, errs, "name length %d", len(name))
		assert.True(t, errs.Has("name"))
	}

	for _, name := range []string{"Al", strings.Repeat("a", 255)} {
		assert.NoError(t, Customer.Validate(Payload{"name": name}))
	}
}

func TestCustomer_NameRequiredAndCharset(t *testing.T) {
	errs := Extract(Customer.Validate(Payload{}))
	assert.Equal(t, []string{"Name is required"}, errs.Get("name"))

	errs = Extract(Customer.Validate(Payload{"name": "   "}))
	assert.Equal(t, []string{"Name is required"}, errs.Get("name"))

	errs = Extract(Customer.Validate(Payload{"name": "<b>Budi</b>"}))
	assert.Equal(t, []string{"Name contains invalid characters"}, errs.Get("name"))

	errs = Extract(Customer.Validate(Payload{"name": 42}))
	assert.True(t, errs.Has("name"))

	assert.NoError(t, Customer.Validate(Payload{"name": "O'Brien-Smith, Jr."}))
}

func TestCustomer_CollectsAllFields(t *testing.T) {
	p := payload(t, `{
		"name": "x",
		"phone": "abc",
		"email": "not-an-email",
		"address": "`+strings.Repeat("a", 1001)+`",
		"tags": ["vip"],
		"notes": "`+strings.Repeat("n", 5001)+`"
	}`)

	errs := Extract(Customer.Validate(p))
	require.NotNil(t, errs)
	for _, field := range []string{"name", "phone", "email", "address", "tags", "notes"} {
		assert.True(t, errs.Has(field), "expected error for %s", field)
	}
}

func TestCustomer_OptionalFieldsMayBeBlankOrNull(t *testing.T) {
	p := payload(t, `{"name":"Budi","phone":"","email":null,"address":"  ","tags":null}`)
	assert.NoError(t, Customer.Validate(p))
}

func TestCustomer_PhoneLimit(t *testing.T) {
	errs := Extract(Customer.Validate(Payload{"name": "Budi", "phone": strings.Repeat("1", 51)}))
	assert.Equal(t, []string{"Phone number must be less than 50 characters"}, errs.Get("phone"))
}

func TestCustomer_Tags(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		wantErr string
	}{
		{"valid", `{"name":"Budi","tags":["langganan","potensial"]}`, ""},
		{"duplicates permitted", `{"name":"Budi","tags":["rewel","rewel"]}`, ""},
		{"empty", `{"name":"Budi","tags":[]}`, ""},
		{"foreign values named", `{"name":"Budi","tags":["langganan","vip","gold"]}`, "Invalid tags: vip, gold"},
		{"non string entry", `{"name":"Budi","tags":[1]}`, "Invalid tags: 1"},
		{"not an array", `{"name":"Budi","tags":"langganan"}`, "Tags must be an array"},
		{"too many", `{"name":"Budi","tags":["rewel","rewel","rewel","rewel","rewel","rewel","rewel","rewel","rewel","rewel","rewel"]}`, "Maximum 10 tags allowed"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Customer.Validate(payload(t, tt.body))
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			assert.Equal(t, []string{tt.wantErr}, Extract(err).Get("tags"))
		})
	}
}

func TestOrder(t *testing.T) {
	assert.NoError(t, Order.Validate(payload(t, `{"customer_id":1,"order_date":"2024-05-01","total_amount":150000}`)))
	assert.NoError(t, Order.Validate(payload(t, `{"customer_id":"3","order_date":"2024-05-01T10:00:00Z","total_amount":"0","status":"processing"}`)))

	errs := Extract(Order.Validate(payload(t, `{"customer_id":0,"order_date":"2024-02-30","total_amount":-1,"status":"shipped"}`)))
	require.NotNil(t, errs)
	assert.True(t, errs.Has("customer_id"))
	assert.True(t, errs.Has("order_date"))
	assert.True(t, errs.Has("total_amount"))
	assert.True(t, errs.Has("status"))

	errs = Extract(Order.Validate(Payload{}))
	assert.True(t, errs.Has("customer_id"))
	assert.True(t, errs.Has("order_date"))
	assert.True(t, errs.Has("total_amount"))
	assert.False(t, errs.Has("status"))

	errs = Extract(Order.Validate(payload(t, `{"customer_id":1.5,"order_date":"2024-01-01","total_amount":"abc"}`)))
	assert.True(t, errs.Has("customer_id"))
	assert.True(t, errs.Has("total_amount"))
}

func TestOrder_TotalAmountFitsColumn(t *testing.T) {
	assert.NoError(t, Order.Validate(payload(t, `{"customer_id":1,"order_date":"2024-05-01","total_amount":999999999999.99}`)))

	for _, amount := range []string{"1000000000000", "1e15", `"2000000000000"`} {
		errs := Extract(Order.Validate(payload(t, `{"customer_id":1,"order_date":"2024-05-01","total_amount":`+amount+`}`)))
		require.NotNil(t, errs, amount)
		assert.True(t, errs.Has("total_amount"), amount)
		assert.False(t, errs.Has("customer_id"), amount)
	}
}

func TestFollowup(t *testing.T) {
	assert.NoError(t, Followup.Validate(payload(t, `{"customer_id":2,"due_date":"2024-06-10","message":"call back"}`)))

	errs := Extract(Followup.Validate(payload(t, `{"customer_id":-4,"due_date":"tomorrow","message":"`+strings.Repeat("m", 2001)+`"}`)))
	require.NotNil(t, errs)
	assert.True(t, errs.Has("customer_id"))
	assert.True(t, errs.Has("due_date"))
	assert.True(t, errs.Has("message"))
}

func TestParseID(t *testing.T) {
	id, err := ParseID("id", "42", "ID must be a positive integer")
	require.NoError(t, err)
	assert.Equal(t, int64(42), id)

	for _, raw := range []string{"0", "-1", "abc", "", "1.5"} {
		_, err := ParseID("id", raw, "ID must be a positive integer")
		errs := Extract(err)
		require.NotNil(t, errs, "raw %q", raw)
		assert.Equal(t, []string{"ID must be a positive integer"}, errs.Get("id"))
	}
}

func TestExtract_NonValidationError(t *testing.T) {
	assert.Nil(t, Extract(models.ErrNotFoundWithMsg("missing")))
	assert.Nil(t, Extract(nil))
}

func TestPayloadAccessors(t *testing.T) {
	p := payload(t, `{"s":"  hi ","blank":" ","n":7,"f":"2.5","d":"2024-01-31","arr":["a",1,"b"]}`)

	require.NotNil(t, p.String("s"))
	assert.Equal(t, "hi", *p.String("s"))
	assert.Nil(t, p.String("blank"))
	assert.Nil(t, p.String("missing"))

	n, ok := p.Int("n")
	assert.True(t, ok)
	assert.Equal(t, int64(7), n)

	f, ok := p.Float("f")
	assert.True(t, ok)
	assert.Equal(t, 2.5, f)

	d, ok := p.Date("d")
	assert.True(t, ok)
	assert.Equal(t, 31, d.Day())

	assert.Equal(t, []string{"a", "b"}, p.Strings("arr"))
}
