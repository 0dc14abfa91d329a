// Package assistly binds the Assistly customer API.
//
// CustomerResource maps each operation onto one request against the customers
// collection and unwraps the JSON envelope the server answers with:
//
//	exec, _ := httpclient.NewRestyExecutor(httpclient.Options{BaseURL: "https://acme.assistly.com/api/v1", Format: "json"})
//	customers := assistly.NewCustomerResource(exec)
//	c, err := customers.UpdateCustomer(ctx, "12345", httpclient.Params{"name": "Christopher Warren"})
//
// Transport failures come back as errors. A write the server rejects with
// "success": false is not an error: the full envelope is returned as the result so
// callers can read whatever diagnostics the server included.
package assistly
