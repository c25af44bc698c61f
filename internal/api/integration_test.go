package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/SherClockHolmes/webpush-go"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"hostel-portal-backend/config"
	"hostel-portal-backend/internal/auth"
	"hostel-portal-backend/internal/db"
	"hostel-portal-backend/internal/files"
	"hostel-portal-backend/internal/model"
	"hostel-portal-backend/internal/occupancy"
	"hostel-portal-backend/internal/store"
)

type testApp struct {
	router  *gin.Engine
	store   store.Store
	authMgr *auth.Manager
}

func newTestApp(t *testing.T) *testApp {
	t.Helper()
	gin.SetMode(gin.TestMode)

	testDB, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.Migrate(testDB))

	hostelCfg := config.HostelConfig{
		Hostels:       []string{"Dheeran", "Valluvar"},
		BedCapacity:   4,
		RoomsPerFloor: 5,
	}
	appStore := store.NewGormStore(testDB, hostelCfg.BedCapacity)
	snapshot := occupancy.NewSnapshot(appStore, hostelCfg.BedCapacity, time.Minute)

	uploads, err := files.NewStore(t.TempDir(), "/uploads", 5)
	require.NoError(t, err)

	authMgr := auth.NewManager(config.AuthConfig{
		JWTSecret:   "integration-test-secret",
		TokenTTL:    time.Hour,
		AdminEmails: []string{"warden@kongu.edu"},
	})

	cfg := &config.Config{
		Server: config.ServerConfig{
			RateLimitPerSec: 1000,
			RateLimitBurst:  1000,
			CacheTTLSeconds: 1,
		},
		Hostel:  hostelCfg,
		Uploads: config.UploadsConfig{PublicPath: "/uploads"},
	}

	handler := NewHandler(appStore, snapshot, hostelCfg, uploads, &webpush.Options{}, nil)
	return &testApp{
		router:  NewRouter(handler, authMgr, cfg),
		store:   appStore,
		authMgr: authMgr,
	}
}

func (app *testApp) token(t *testing.T, userID uuid.UUID, email string) string {
	t.Helper()
	token, err := app.authMgr.IssueToken(userID, email)
	require.NoError(t, err)
	return token
}

func (app *testApp) do(t *testing.T, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}

	req := httptest.NewRequest(method, path, &buf)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	app.router.ServeHTTP(w, req)
	return w
}

func claimBody(hostel, floor, room string, bed int) gin.H {
	return gin.H{
		"name":        "Arun Kumar",
		"reg_no":      "22ITR001",
		"department":  "Information Technology",
		"receipt_url": "/uploads/receipt.png",
		"hostel":      hostel,
		"floor":       floor,
		"room_number": room,
		"bed_number":  bed,
	}
}

func TestClaimAndVacancyFlow(t *testing.T) {
	app := newTestApp(t)
	student := app.token(t, uuid.New(), "22itr001@kongu.edu")

	w := app.do(t, http.MethodPost, "/api/allocations", student, claimBody("Dheeran", "1", "0102", 3))
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var created model.Allocation
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	assert.Equal(t, model.AllocationPending, created.Status)
	assert.Equal(t, "First", created.Floor)
	assert.Equal(t, "102", created.RoomNumber)

	// The selection grid view blocks the pending bed immediately.
	w = app.do(t, http.MethodGet, "/api/vacancy?hostel=Dheeran&floor=First&pending=1", "", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var grid vacancyResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &grid))
	assert.Equal(t, "First", grid.Floor)
	assert.Equal(t, 4, grid.BedCapacity)
	assert.Len(t, grid.Rooms, 5)

	var room102 []bool
	for _, room := range grid.Rooms {
		if room.RoomNumber == "102" {
			room102 = room.Beds
		}
	}
	assert.Equal(t, []bool{false, false, true, false}, room102)

	// The public view counts confirmed allocations only.
	w = app.do(t, http.MethodGet, "/api/vacancy?hostel=Dheeran&floor=First", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &grid))
	for _, room := range grid.Rooms {
		assert.Equal(t, []bool{false, false, false, false}, room.Beds, "room %s", room.RoomNumber)
	}
}

func TestCompetingClaimConflicts(t *testing.T) {
	app := newTestApp(t)

	first := app.token(t, uuid.New(), "22itr001@kongu.edu")
	w := app.do(t, http.MethodPost, "/api/allocations", first, claimBody("Dheeran", "First", "101", 1))
	require.Equal(t, http.StatusCreated, w.Code)

	// Same bed under a different floor spelling still conflicts.
	second := app.token(t, uuid.New(), "22itr002@kongu.edu")
	w = app.do(t, http.MethodPost, "/api/allocations", second, claimBody("Dheeran", "1st", "0101", 1))
	assert.Equal(t, http.StatusConflict, w.Code)

	// A neighbouring bed is still claimable.
	w = app.do(t, http.MethodPost, "/api/allocations", second, claimBody("Dheeran", "First", "101", 2))
	assert.Equal(t, http.StatusCreated, w.Code)
}

func TestAdminDecisionFlow(t *testing.T) {
	app := newTestApp(t)
	ctx := context.Background()

	userID := uuid.New()
	student := app.token(t, userID, "22itr001@kongu.edu")
	admin := app.token(t, uuid.New(), "warden@kongu.edu")

	require.NoError(t, app.store.UpsertProfile(ctx, &model.StudentProfile{
		UserID: userID, RollNo: "22ITR001", Name: "Arun Kumar", CanApply: true,
	}))

	w := app.do(t, http.MethodPost, "/api/allocations", student, claimBody("Dheeran", "First", "101", 1))
	require.Equal(t, http.StatusCreated, w.Code)

	var alloc model.Allocation
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &alloc))

	w = app.do(t, http.MethodPatch, "/api/admin/allocations/"+alloc.ID.String(), admin,
		gin.H{"status": model.AllocationConfirmed})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var decided model.Allocation
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &decided))
	assert.Equal(t, model.AllocationConfirmed, decided.Status)

	// Confirmation consumes the student's one application.
	profile, err := app.store.ProfileForUser(ctx, userID)
	require.NoError(t, err)
	assert.False(t, profile.CanApply)

	w = app.do(t, http.MethodPost, "/api/allocations", student, claimBody("Dheeran", "Second", "201", 1))
	assert.Equal(t, http.StatusConflict, w.Code)

	// The confirmed bed shows up in the public vacancy view.
	w = app.do(t, http.MethodGet, "/api/vacancy?hostel=Dheeran&floor=First", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var grid vacancyResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &grid))
	assert.Equal(t, []bool{true, false, false, false}, grid.Rooms[0].Beds)

	// Deciding twice is a conflict.
	w = app.do(t, http.MethodPatch, "/api/admin/allocations/"+alloc.ID.String(), admin,
		gin.H{"status": model.AllocationRejected})
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestResubmissionAfterRejection(t *testing.T) {
	app := newTestApp(t)

	userID := uuid.New()
	student := app.token(t, userID, "22itr001@kongu.edu")
	admin := app.token(t, uuid.New(), "warden@kongu.edu")

	w := app.do(t, http.MethodPost, "/api/allocations", student, claimBody("Dheeran", "First", "101", 1))
	require.Equal(t, http.StatusCreated, w.Code)
	var alloc model.Allocation
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &alloc))

	w = app.do(t, http.MethodPatch, "/api/admin/allocations/"+alloc.ID.String(), admin,
		gin.H{"status": model.AllocationRejected})
	require.Equal(t, http.StatusOK, w.Code)

	// The rejected bed is free again and the student may reapply.
	w = app.do(t, http.MethodPost, "/api/allocations", student, claimBody("Valluvar", "Ground", "3", 2))
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w = app.do(t, http.MethodGet, "/api/allocations/mine", student, nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &alloc))
	assert.Equal(t, "Valluvar", alloc.Hostel)
	assert.Equal(t, model.AllocationPending, alloc.Status)
}

func TestVacancyValidation(t *testing.T) {
	app := newTestApp(t)

	w := app.do(t, http.MethodGet, "/api/vacancy?hostel=Nonexistent&floor=First", "", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = app.do(t, http.MethodGet, "/api/vacancy?hostel=Dheeran&floor=Dining+First", "", nil)
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
}

func TestAuthBoundaries(t *testing.T) {
	app := newTestApp(t)
	student := app.token(t, uuid.New(), "22itr001@kongu.edu")

	t.Run("Missing token", func(t *testing.T) {
		w := app.do(t, http.MethodGet, "/api/allocations/mine", "", nil)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("Garbage token", func(t *testing.T) {
		w := app.do(t, http.MethodGet, "/api/allocations/mine", "garbage", nil)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("Student blocked from admin routes", func(t *testing.T) {
		w := app.do(t, http.MethodGet, "/api/admin/allocations", student, nil)
		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("No allocation yet", func(t *testing.T) {
		w := app.do(t, http.MethodGet, "/api/allocations/mine", student, nil)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestLeaveLifecycle(t *testing.T) {
	app := newTestApp(t)
	student := app.token(t, uuid.New(), "22itr001@kongu.edu")
	admin := app.token(t, uuid.New(), "warden@kongu.edu")

	w := app.do(t, http.MethodPost, "/api/leaves", student, gin.H{
		"name":           "Arun Kumar",
		"roll_number":    "22ITR001",
		"branch":         "Information Technology",
		"hostel_name":    "Dheeran",
		"room_number":    "101",
		"date_of_stay":   "2026-09-04",
		"time":           "10:00",
		"reason":         "Department symposium",
		"student_mobile": "9876543210",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var leave model.LeaveApplication
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &leave))
	assert.Equal(t, model.LeavePending, leave.Status)

	w = app.do(t, http.MethodPatch, "/api/admin/leaves/"+leave.ID.String(), admin, gin.H{
		"status":              model.LeaveApproved,
		"admin_signature_url": "/uploads/signature.png",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &leave))
	assert.Equal(t, model.LeaveApproved, leave.Status)
	assert.Equal(t, "/uploads/signature.png", leave.AdminSignatureURL)

	w = app.do(t, http.MethodGet, "/api/leaves/mine", student, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var mine []model.LeaveApplication
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &mine))
	assert.Len(t, mine, 1)
}

func TestMenuEndpoint(t *testing.T) {
	app := newTestApp(t)
	admin := app.token(t, uuid.New(), "warden@kongu.edu")

	w := app.do(t, http.MethodPut, "/api/admin/menu", admin, []gin.H{
		{"day": "Monday", "breakfast": "Idly, Sambar", "lunch": "Meals", "dinner": "Chapathi"},
	})
	require.Equal(t, http.StatusNoContent, w.Code, w.Body.String())

	w = app.do(t, http.MethodGet, "/api/menu", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var days []model.MenuDay
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &days))
	require.Len(t, days, 1)
	assert.Equal(t, "Monday", days[0].Day)
	assert.Equal(t, "Idly, Sambar", days[0].Breakfast)
}
