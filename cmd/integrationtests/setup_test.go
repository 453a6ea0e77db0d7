package integrationtests

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	auction "github.com/aseell-s/E-auctionCompletedVersion-sub000/internal/auctionService"
	model "github.com/aseell-s/E-auctionCompletedVersion-sub000/internal/models"
	"github.com/aseell-s/E-auctionCompletedVersion-sub000/internal/repository"
	"github.com/aseell-s/E-auctionCompletedVersion-sub000/internal/server"
	"github.com/aseell-s/E-auctionCompletedVersion-sub000/services/auction/handler"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

// apiClock is a hand-adjustable clock so tests can move past auction end times.
type apiClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *apiClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *apiClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

// SetupTestRouter initializes the router with an in-memory ledger and a fixed
// set of marketplace users for integration testing.
func SetupTestRouter() (*gin.Engine, *repository.MemoryLedger, *apiClock) {
	gin.SetMode(gin.TestMode)

	ledger := repository.NewMemoryLedger()
	ledger.AddUser(model.User{UserID: "admin1", Role: model.RoleSuperAdmin, IsApproved: true})
	ledger.AddUser(model.User{UserID: "seller1", Role: model.RoleSeller, IsApproved: true})
	ledger.AddUser(model.User{UserID: "seller2", Role: model.RoleSeller, IsApproved: false})
	ledger.AddUser(model.User{UserID: "buyer1", Role: model.RoleBuyer, Amount: decimal.NewFromInt(1000)})
	ledger.AddUser(model.User{UserID: "buyer2", Role: model.RoleBuyer, Amount: decimal.NewFromInt(500)})

	clock := &apiClock{now: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)}
	service := auction.NewAuctionService(ledger, auction.WithClock(clock.Now))
	router := server.SetupRouter(service)
	return router, ledger, clock
}

// ExecuteRequest executes an HTTP request as the given actor and returns the
// response recorder.
func ExecuteRequest(t *testing.T, router *gin.Engine, method, url, actor string, body []byte) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(method, url, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if actor != "" {
		req.Header.Set(handler.ActorHeader, actor)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

// ExecuteRequestAndParse executes an HTTP request and parses the JSON envelope,
// returning the data payload for 2xx responses and the full envelope otherwise.
func ExecuteRequestAndParse(t *testing.T, router *gin.Engine, method, url, actor string, body any) (map[string]any, *httptest.ResponseRecorder) {
	t.Helper()

	var reqBody []byte
	var err error

	switch v := body.(type) {
	case nil:
	case []byte:
		reqBody = v
	default:
		reqBody, err = json.Marshal(v)
		if err != nil {
			t.Fatalf("failed to marshal body: %v", err)
		}
	}

	w := ExecuteRequest(t, router, method, url, actor, reqBody)

	var resp map[string]any
	if len(w.Body.Bytes()) > 0 {
		if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
			t.Fatalf("failed to unmarshal response: %v", err)
		}

		if w.Code >= 200 && w.Code < 300 {
			if data, ok := resp["data"].(map[string]any); ok {
				resp = data
			}
		}
	}

	return resp, w
}
