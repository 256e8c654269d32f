package services_test

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/anjiri1684/alx_travel/payments"
)

// fakeGateway answers with canned responses and counts calls.
type fakeGateway struct {
	mu sync.Mutex

	initResp payments.InitializeResponse
	initErr  error
	verify   *payments.VerifyResult
	verErr   error

	initialized []payments.InitializeRequest
	verified    []string

	onInitialize func()
}

func (g *fakeGateway) Initialize(_ context.Context, req payments.InitializeRequest) (payments.InitializeResponse, error) {
	if g.onInitialize != nil {
		g.onInitialize()
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	g.initialized = append(g.initialized, req)
	return g.initResp, g.initErr
}

func (g *fakeGateway) Verify(_ context.Context, txRef string) (*payments.VerifyResult, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.verified = append(g.verified, txRef)
	return g.verify, g.verErr
}

func checkout() *fakeGateway {
	return &fakeGateway{initResp: payments.InitializeSuccess{CheckoutURL: "https://checkout.example/abc"}}
}

func verifiedAs(status string) *payments.VerifyResult {
	body := `{"status":"success","data":{"status":"` + status + `"}}`
	return &payments.VerifyResult{
		Succeeded:     status == "success",
		GatewayStatus: status,
		Payload:       json.RawMessage(body),
	}
}
