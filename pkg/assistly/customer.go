package assistly

import (
	"context"
	"fmt"

	"github.com/samvad-hq/assistly-go/pkg/httpclient"
)

const (
	customersPath = "customers"
	customerKey   = "customer"
)

// CustomerResource exposes the customer endpoints. It holds no mutable state and is
// safe for concurrent use when the executor is.
type CustomerResource struct {
	exec httpclient.Executor
}

// NewCustomerResource wires the resource to an executor.
func NewCustomerResource(exec httpclient.Executor) *CustomerResource {
	return &CustomerResource{exec: exec}
}

// Customers lists customers. Filters such as since_id and count are passed through
// as query parameters and the parsed response is returned as is, pagination included.
func (r *CustomerResource) Customers(ctx context.Context, filters httpclient.Params) (httpclient.Value, error) {
	return r.exec.Get(ctx, customersPath, filters)
}

// Customer fetches a single customer and returns the "customer" member of the response.
func (r *CustomerResource) Customer(ctx context.Context, id string) (httpclient.Value, error) {
	resp, err := r.exec.Get(ctx, customerPath(id), nil)
	if err != nil {
		return httpclient.Value{}, err
	}
	return resp.Field(customerKey), nil
}

// CreateCustomer creates a customer from attrs (name, twitter, ...).
func (r *CustomerResource) CreateCustomer(ctx context.Context, attrs httpclient.Params) (httpclient.Value, error) {
	resp, err := r.exec.Post(ctx, customersPath, attrs)
	if err != nil {
		return httpclient.Value{}, err
	}
	return unwrap(resp, customerKey), nil
}

// UpdateCustomer updates the customer identified by id.
func (r *CustomerResource) UpdateCustomer(ctx context.Context, id string, attrs httpclient.Params) (httpclient.Value, error) {
	resp, err := r.exec.Put(ctx, customerPath(id), attrs)
	if err != nil {
		return httpclient.Value{}, err
	}
	return unwrap(resp, customerKey), nil
}

// CreateCustomerDetail adds an email, phone or address to a customer. The kind/value
// pair is always sent and overrides a same-named key in opts; opts is not modified.
func (r *CustomerResource) CreateCustomerDetail(ctx context.Context, id string, kind DetailKind, value string, opts httpclient.Params) (httpclient.Value, error) {
	if !kind.valid() {
		return httpclient.Value{}, fmt.Errorf("%w: %q", ErrUnknownDetailKind, kind)
	}

	params := opts.Merge(httpclient.Params{string(kind): value})
	resp, err := r.exec.Post(ctx, detailsPath(id, kind), params)
	if err != nil {
		return httpclient.Value{}, err
	}
	return unwrap(resp, string(kind)), nil
}

// UpdateCustomerDetail updates an existing contact detail of a customer.
func (r *CustomerResource) UpdateCustomerDetail(ctx context.Context, id string, kind DetailKind, detailID string, attrs httpclient.Params) (httpclient.Value, error) {
	if !kind.valid() {
		return httpclient.Value{}, fmt.Errorf("%w: %q", ErrUnknownDetailKind, kind)
	}

	resp, err := r.exec.Put(ctx, detailsPath(id, kind)+"/"+detailID, attrs)
	if err != nil {
		return httpclient.Value{}, err
	}
	return unwrap(resp, string(kind)), nil
}

// unwrap returns results[key] of a successful envelope and the envelope itself otherwise.
func unwrap(resp httpclient.Value, key string) httpclient.Value {
	if !resp.Field("success").Truthy() {
		return resp
	}
	return resp.Field("results").Field(key)
}

func customerPath(id string) string {
	return customersPath + "/" + id
}

func detailsPath(id string, kind DetailKind) string {
	return customerPath(id) + "/" + kind.collection()
}
