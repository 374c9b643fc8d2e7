// Package gatewaytest runs an in-process imitation of the warehouse backend
// for tests: the same envelope, the same auth rules, a handful of resources.
package gatewaytest

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"slices"
	"strconv"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/dmitrijs2005/stockkeeper/internal/client/models"
	"github.com/go-chi/chi/v5"
)

// Backend is safe for concurrent use by the server goroutines and the test.
type Backend struct {
	srv *httptest.Server

	mu       sync.Mutex
	access   string
	refresh  string
	seq      int
	users    map[string]string
	profiles map[string]models.User
	current  string

	refreshStatus int
	refreshDelay  time.Duration
	refreshCalls  int
	hits          map[string]int
	lastHeader    http.Header
	held          *barrier

	items      map[int64]models.Item
	nextItem   int64
	categories []models.Category
	warehouses []models.Warehouse
	suppliers  []models.Supplier
	operations []models.Operation
}

// New starts a backend seeded with one user ("admin"/"admin123") and a small
// catalogue. It is closed when the test ends.
func New(t testing.TB) *Backend {
	t.Helper()
	b := &Backend{
		users:    map[string]string{"admin": "admin123"},
		profiles: map[string]models.User{"admin": {ID: 1, Username: "admin", Role: "admin", IsActive: true}},
		hits:     map[string]int{},
		items:    map[int64]models.Item{},
		nextItem: 1,
		categories: []models.Category{
			{ID: 1, Name: "五金", Code: "HW", IsActive: true},
			{ID: 2, Name: "耗材", Code: "CS", IsActive: true},
		},
		warehouses: []models.Warehouse{
			{ID: 1, Name: "一号仓", Code: "WH1", Capacity: 1000, IsActive: true},
			{ID: 2, Name: "二号仓", Code: "WH2", IsActive: true},
		},
		suppliers: []models.Supplier{
			{ID: 1, Name: "华东五金", Code: "SUP1", Status: "active"},
		},
	}
	b.AddItem(models.Item{Name: "六角螺栓", Code: "ITEM-001", Barcode: "6901234567890", Category: models.Ref{ID: 1}, Warehouse: models.Ref{ID: 1}, Price: "1.20", Stock: 100, MinStock: 20})
	b.AddItem(models.Item{Name: "平垫片", Code: "ITEM-002", Barcode: "6901234567891", Category: models.Ref{ID: 1}, Warehouse: models.Ref{ID: 1}, Price: "0.10", Stock: 5, MinStock: 50})
	b.AddItem(models.Item{Name: "打印纸", Code: "ITEM-003", Barcode: "6901234567892", Category: models.Ref{ID: 2}, Warehouse: models.Ref{ID: 2}, Price: "25.00", Stock: 12, MinStock: 10})

	b.srv = httptest.NewServer(b.routes())
	t.Cleanup(b.srv.Close)
	return b
}

// URL is the API root, e.g. http://127.0.0.1:1234/api.
func (b *Backend) URL() string { return b.srv.URL + "/api" }

func (b *Backend) HTTPClient() *http.Client { return b.srv.Client() }

// Login issues a fresh token pair for username as a real login would, and
// returns it.
func (b *Backend) Login(username string) (access, refresh string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.issueLocked(username)
}

func (b *Backend) issueLocked(username string) (string, string) {
	b.seq++
	b.access = fmt.Sprintf("access-%d", b.seq)
	b.refresh = fmt.Sprintf("refresh-%d", b.seq)
	b.current = username
	return b.access, b.refresh
}

// ExpireAccess makes the current access token stale; the refresh token keeps
// working.
func (b *Backend) ExpireAccess() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.access = ""
}

// AccessToken is the token the backend currently accepts.
func (b *Backend) AccessToken() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.access
}

// FailRefresh makes the refresh endpoint answer with status. 0 restores it.
func (b *Backend) FailRefresh(status int) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.refreshStatus = status
}

// SlowRefresh delays every refresh response by d.
func (b *Backend) SlowRefresh(d time.Duration) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.refreshDelay = d
}

func (b *Backend) RefreshCalls() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.refreshCalls
}

// Hits counts requests for method and path (path relative to the API root).
func (b *Backend) Hits(method, path string) int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.hits[method+" "+path]
}

// LastHeader returns header key of the most recent request.
func (b *Backend) LastHeader(key string) string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.lastHeader.Get(key)
}

// HoldUnauthorized delays the next n 401 responses until all n are pending,
// so n concurrent callers see their 401 at the same moment.
func (b *Backend) HoldUnauthorized(n int) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.held = newBarrier(n)
}

func (b *Backend) AddItem(it models.Item) int64 {
	b.mu.Lock()
	defer b.mu.Unlock()
	it.ID = b.nextItem
	b.nextItem++
	b.items[it.ID] = b.decorateLocked(it)
	return it.ID
}

func (b *Backend) Item(id int64) (models.Item, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	it, ok := b.items[id]
	return it, ok
}

func (b *Backend) decorateLocked(it models.Item) models.Item {
	switch {
	case it.Stock <= 0:
		it.Status = models.StatusOutOfStock
	case it.Stock <= it.MinStock:
		it.Status = models.StatusLowStock
	default:
		it.Status = models.StatusNormal
	}
	for _, w := range b.warehouses {
		if w.ID == it.Warehouse.ID {
			it.WarehouseName = w.Name
		}
	}
	for _, c := range b.categories {
		if c.ID == it.Category.ID {
			it.CategoryName = c.Name
		}
	}
	it.TotalValue = models.Decimal(strconv.FormatFloat(it.Price.Float()*float64(it.Stock), 'f', 2, 64))
	return it
}

func (b *Backend) routes() http.Handler {
	r := chi.NewRouter()
	r.Use(b.count)

	r.Route("/api", func(r chi.Router) {
		r.Post("/auth/login/", b.handleLogin)
		r.Post("/auth/register/", b.handleRegister)
		r.Post("/auth/refresh/", b.handleRefresh)

		r.Group(func(r chi.Router) {
			r.Use(b.authenticated)

			r.Post("/auth/logout/", b.handleLogout)
			r.Get("/auth/profile/", b.handleProfile)

			r.Get("/dashboard/overview/", b.handleOverview)
			r.Get("/dashboard/activities/", b.handleActivities)
			r.Get("/dashboard/low-stock/", b.handleLowStock)
			r.Get("/dashboard/system-info/", b.handleSystemInfo)

			r.Get("/inventory/items/", b.handleItems)
			r.Post("/inventory/items/", b.handleCreateItem)
			r.Get("/inventory/items/{id}/", b.handleItem)
			r.Patch("/inventory/items/{id}/", b.handlePatchItem)
			r.Delete("/inventory/items/{id}/", b.handleDeleteItem)
			r.Get("/inventory/categories/", func(w http.ResponseWriter, r *http.Request) {
				b.mu.Lock()
				defer b.mu.Unlock()
				writeOK(w, http.StatusOK, b.categories)
			})
			r.Get("/warehouses/", func(w http.ResponseWriter, r *http.Request) {
				b.mu.Lock()
				defer b.mu.Unlock()
				writePage(w, b.warehouses)
			})
			r.Get("/suppliers/", func(w http.ResponseWriter, r *http.Request) {
				b.mu.Lock()
				defer b.mu.Unlock()
				writePage(w, b.suppliers)
			})

			r.Get("/operations/", b.handleOperations)
			r.Post("/operations/inbound/", b.handleInbound)
			r.Post("/operations/outbound/", b.handleOutbound)
		})
	})
	return r
}

func (b *Backend) count(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		b.mu.Lock()
		b.hits[r.Method+" "+strings.TrimPrefix(r.URL.Path, "/api")]++
		b.lastHeader = r.Header.Clone()
		b.mu.Unlock()
		next.ServeHTTP(w, r)
	})
}

func (b *Backend) authenticated(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := strings.TrimPrefix(r.Header.Get("Authorization"), "Bearer ")

		b.mu.Lock()
		ok := b.access != "" && token == b.access
		held := b.held
		b.mu.Unlock()

		if !ok {
			if held != nil {
				held.wait(2 * time.Second)
			}
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = w.Write([]byte(`{"detail":"Given token not valid for any token type","code":"token_not_valid"}`))
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (b *Backend) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req models.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeErr(w, http.StatusBadRequest, "请求格式错误")
		return
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	if pw, ok := b.users[req.Username]; !ok || pw != req.Password {
		writeErr(w, http.StatusBadRequest, "用户名或密码错误")
		return
	}
	access, refresh := b.issueLocked(req.Username)
	user, _ := json.Marshal(b.profiles[req.Username])
	writeOK(w, http.StatusOK, models.LoginResponse{AccessToken: access, RefreshToken: refresh, User: user})
}

func (b *Backend) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req models.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeErr(w, http.StatusBadRequest, "请求格式错误")
		return
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	if _, exists := b.users[req.Username]; exists {
		writeErr(w, http.StatusBadRequest, "注册失败")
		return
	}
	b.users[req.Username] = req.Password
	b.profiles[req.Username] = models.User{ID: int64(len(b.users)), Username: req.Username, Email: req.Email, IsActive: true}
	access, refresh := b.issueLocked(req.Username)
	user, _ := json.Marshal(b.profiles[req.Username])
	writeOK(w, http.StatusCreated, models.LoginResponse{AccessToken: access, RefreshToken: refresh, User: user})
}

// handleRefresh answers like simplejwt: a raw {"access": ...} without the
// envelope.
func (b *Backend) handleRefresh(w http.ResponseWriter, r *http.Request) {
	var req models.RefreshRequest
	_ = json.NewDecoder(r.Body).Decode(&req)

	b.mu.Lock()
	b.refreshCalls++
	delay := b.refreshDelay
	status := b.refreshStatus
	b.mu.Unlock()

	if delay > 0 {
		time.Sleep(delay)
	}

	w.Header().Set("Content-Type", "application/json")
	if status != 0 {
		w.WriteHeader(status)
		_, _ = w.Write([]byte(`{"detail":"Token is invalid or expired","code":"token_not_valid"}`))
		return
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	if req.Refresh == "" || req.Refresh != b.refresh {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"detail":"Token is invalid or expired","code":"token_not_valid"}`))
		return
	}
	b.seq++
	b.access = fmt.Sprintf("access-%d", b.seq)
	_ = json.NewEncoder(w).Encode(models.TokenPair{Access: b.access})
}

func (b *Backend) handleLogout(w http.ResponseWriter, r *http.Request) {
	var req models.LogoutRequest
	_ = json.NewDecoder(r.Body).Decode(&req)

	b.mu.Lock()
	defer b.mu.Unlock()
	if req.RefreshToken == b.refresh {
		b.refresh = ""
	}
	writeMessage(w, "登出成功")
}

func (b *Backend) handleProfile(w http.ResponseWriter, r *http.Request) {
	b.mu.Lock()
	defer b.mu.Unlock()
	writeOK(w, http.StatusOK, b.profiles[b.current])
}

func (b *Backend) handleOverview(w http.ResponseWriter, r *http.Request) {
	b.mu.Lock()
	defer b.mu.Unlock()

	var ov models.Overview
	var total float64
	for _, it := range b.items {
		ov.Overview.TotalItems++
		ov.Overview.TotalStock += it.Stock
		total += it.TotalValue.Float()
		if it.Status != models.StatusNormal {
			ov.Overview.LowStockItems++
		}
	}
	ov.Overview.TotalValue = models.Decimal(strconv.FormatFloat(total, 'f', 2, 64))
	ov.Overview.TotalCategories = len(b.categories)
	ov.Overview.TotalSuppliers = len(b.suppliers)
	writeOK(w, http.StatusOK, ov)
}

func (b *Backend) handleActivities(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	if limit <= 0 {
		limit = 10
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	out := []models.Activity{}
	for i := len(b.operations) - 1; i >= 0 && len(out) < limit; i-- {
		op := b.operations[i]
		out = append(out, models.Activity{
			ID:        op.ID,
			Type:      op.Type,
			ItemName:  op.ItemName,
			ItemCode:  op.ItemCode,
			Quantity:  op.Quantity,
			CreatedAt: op.CreatedAt.Format(time.RFC3339),
		})
	}
	writeOK(w, http.StatusOK, out)
}

func (b *Backend) handleLowStock(w http.ResponseWriter, r *http.Request) {
	b.mu.Lock()
	defer b.mu.Unlock()

	out := []models.LowStockItem{}
	for _, it := range b.sortedItemsLocked() {
		if it.Status == models.StatusNormal {
			continue
		}
		out = append(out, models.LowStockItem{
			ID: it.ID, Name: it.Name, Code: it.Code,
			Warehouse: it.WarehouseName, Category: it.CategoryName,
			Stock: it.Stock, MinStock: it.MinStock, Status: it.Status,
		})
	}
	writeOK(w, http.StatusOK, out)
}

func (b *Backend) handleSystemInfo(w http.ResponseWriter, r *http.Request) {
	b.mu.Lock()
	defer b.mu.Unlock()

	var info models.SystemInfo
	info.System.Name = "库存管理系统"
	info.System.Version = "v1.0.0"
	info.Statistics.ItemsCount = len(b.items)
	info.ServerTime = time.Now().Format(time.DateTime)
	writeOK(w, http.StatusOK, info)
}

func (b *Backend) handleItems(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	b.mu.Lock()
	defer b.mu.Unlock()

	out := []models.Item{}
	for _, it := range b.sortedItemsLocked() {
		if v := q.Get("code"); v != "" && it.Code != v {
			continue
		}
		if v := q.Get("barcode"); v != "" && it.Barcode != v {
			continue
		}
		if v := q.Get("search"); v != "" &&
			!strings.Contains(it.Name, v) && !strings.Contains(it.Code, v) && !strings.Contains(it.Barcode, v) {
			continue
		}
		out = append(out, it)
	}
	writePage(w, out)
}

func (b *Backend) handleItem(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)

	b.mu.Lock()
	defer b.mu.Unlock()

	it, ok := b.items[id]
	if !ok {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"detail":"未找到。"}`))
		return
	}
	writeOK(w, http.StatusOK, it)
}

func (b *Backend) handleCreateItem(w http.ResponseWriter, r *http.Request) {
	var in models.ItemInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeErr(w, http.StatusBadRequest, "请求格式错误")
		return
	}
	it := models.Item{
		Name: in.Name, Code: in.Code, Barcode: in.Barcode,
		Category: models.Ref{ID: in.Category}, Price: in.Price,
		Stock: in.Stock, MinStock: in.MinStock,
	}
	if in.Warehouse != nil {
		it.Warehouse = models.Ref{ID: *in.Warehouse}
	}
	id := b.AddItem(it)
	created, _ := b.Item(id)
	writeOK(w, http.StatusCreated, created)
}

// handlePatchItem accepts a JSON object or multipart/form-data with an
// optional "image" file, like the real item endpoint.
func (b *Backend) handlePatchItem(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)

	fields := map[string]string{}
	var image string
	if strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data") {
		if err := r.ParseMultipartForm(1 << 20); err != nil {
			writeErr(w, http.StatusBadRequest, "请求格式错误")
			return
		}
		for k, v := range r.MultipartForm.Value {
			fields[k] = v[0]
		}
		if fh, ok := r.MultipartForm.File["image"]; ok && len(fh) > 0 {
			image = "/media/items/" + fh[0].Filename
		}
	} else {
		var raw map[string]any
		if err := json.NewDecoder(r.Body).Decode(&raw); err != nil {
			writeErr(w, http.StatusBadRequest, "请求格式错误")
			return
		}
		for k, v := range raw {
			fields[k] = fmt.Sprint(v)
		}
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	it, ok := b.items[id]
	if !ok {
		writeErr(w, http.StatusNotFound, "物品未找到")
		return
	}
	if v, ok := fields["name"]; ok {
		it.Name = v
	}
	if v, ok := fields["description"]; ok {
		it.Description = v
	}
	if v, ok := fields["min_stock"]; ok {
		if n, err := strconv.Atoi(v); err == nil {
			it.MinStock = n
		}
	}
	if image != "" {
		it.Image = image
	}
	it = b.decorateLocked(it)
	b.items[id] = it
	writeOK(w, http.StatusOK, it)
}

func (b *Backend) handleDeleteItem(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)

	b.mu.Lock()
	defer b.mu.Unlock()

	if _, ok := b.items[id]; !ok {
		writeErr(w, http.StatusNotFound, "物品未找到")
		return
	}
	delete(b.items, id)
	writeMessage(w, "物品删除成功")
}

func (b *Backend) handleOperations(w http.ResponseWriter, r *http.Request) {
	b.mu.Lock()
	defer b.mu.Unlock()

	out := slices.Clone(b.operations)
	slices.Reverse(out)
	if out == nil {
		out = []models.Operation{}
	}
	writePage(w, out)
}

func (b *Backend) handleInbound(w http.ResponseWriter, r *http.Request) {
	var req models.InboundRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeErr(w, http.StatusBadRequest, "请求格式错误")
		return
	}
	if req.Quantity < 1 {
		writeErr(w, http.StatusBadRequest, "数量必须大于0")
		return
	}
	b.move(w, req.Item, models.OpInbound, req.Quantity, func(op *models.Operation) {
		op.Supplier = models.Ref{ID: req.Supplier}
		op.Notes = req.Notes
	})
}

func (b *Backend) handleOutbound(w http.ResponseWriter, r *http.Request) {
	var req models.OutboundRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeErr(w, http.StatusBadRequest, "请求格式错误")
		return
	}
	b.move(w, req.Item, models.OpOutbound, -req.Quantity, func(op *models.Operation) {
		op.Recipient = req.Recipient
		op.Notes = req.Notes
	})
}

// move applies a stock delta and records the operation.
func (b *Backend) move(w http.ResponseWriter, itemID int64, kind string, delta int, fill func(*models.Operation)) {
	b.mu.Lock()
	defer b.mu.Unlock()

	it, ok := b.items[itemID]
	if !ok {
		writeErr(w, http.StatusBadRequest, "物品不存在")
		return
	}
	if it.Stock+delta < 0 {
		writeErr(w, http.StatusBadRequest, fmt.Sprintf("库存不足，当前库存：%d", it.Stock))
		return
	}

	op := models.Operation{
		ID:          int64(len(b.operations) + 1),
		Item:        models.Ref{ID: it.ID},
		ItemName:    it.Name,
		ItemCode:    it.Code,
		Type:        kind,
		Quantity:    max(delta, -delta),
		BeforeStock: it.Stock,
		AfterStock:  it.Stock + delta,
		CreatedAt:   time.Now().UTC().Truncate(time.Second),
	}
	fill(&op)

	it.Stock += delta
	b.items[it.ID] = b.decorateLocked(it)
	b.operations = append(b.operations, op)
	writeOK(w, http.StatusCreated, op)
}

func (b *Backend) sortedItemsLocked() []models.Item {
	out := make([]models.Item, 0, len(b.items))
	for _, it := range b.items {
		out = append(out, it)
	}
	slices.SortFunc(out, func(a, b models.Item) int { return int(a.ID - b.ID) })
	return out
}
