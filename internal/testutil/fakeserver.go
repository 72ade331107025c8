package testutil

import (
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"taskboard/internal/service"
)

// Request is one request received by a FakeServer.
type Request struct {
	Method        string
	URI           string
	Authorization string
	ContentType   string
	Body          string
}

// FakeServer serves the task service HTTP API from memory.
type FakeServer struct {
	*httptest.Server

	// Token is the only accepted access token; empty accepts any bearer token.
	Token string

	mu       sync.Mutex
	tasks    []service.Task
	users    map[string]string
	requests []Request
	failures map[string]failure
	created  int
}

type failure struct {
	status int
	body   string
}

// NewFakeServer starts a server. Call Close when done.
func NewFakeServer() *FakeServer {
	gin.SetMode(gin.TestMode)
	s := &FakeServer{
		users:    make(map[string]string),
		failures: make(map[string]failure),
	}

	r := gin.New()
	r.Use(s.recordRequest, s.injectFailure)

	auth := r.Group("/api/auth")
	auth.POST("/login", s.handleLogin)
	auth.POST("/register", s.handleRegister)

	task := r.Group("/task", s.requireBearer)
	task.GET("/all", s.handleAll)
	task.GET("/filter", s.handleFilter)
	task.GET("/sort", s.handleSort)
	task.POST("/add", s.handleAdd)
	task.PUT("/edit/:id", s.handleEdit)
	task.DELETE("/delete/:id", s.handleDelete)
	task.POST("/in_progress/:id", s.handleStatus(service.StatusInProgress))
	task.POST("/done/:id", s.handleStatus(service.StatusDone))

	s.Server = httptest.NewServer(r)
	return s
}

// AddTask seeds a task.
func (s *FakeServer) AddTask(t service.Task) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.created++
	if t.CreatedAt == "" {
		t.CreatedAt = fmt.Sprintf("2024-01-01T00:00:%02d", s.created)
	}
	s.tasks = append(s.tasks, t)
}

// AddUser seeds an account.
func (s *FakeServer) AddUser(email, password string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.users[email] = password
}

// Fail makes every request to path answer with status and body.
func (s *FakeServer) Fail(path string, status int, body string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failures[path] = failure{status: status, body: body}
}

// Requests returns a copy of the received requests.
func (s *FakeServer) Requests() []Request {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Request, len(s.requests))
	copy(out, s.requests)
	return out
}

// URIs returns "METHOD uri" for each received request.
func (s *FakeServer) URIs() []string {
	reqs := s.Requests()
	out := make([]string, len(reqs))
	for i, r := range reqs {
		out[i] = r.Method + " " + r.URI
	}
	return out
}

// Tasks returns the stored tasks.
func (s *FakeServer) Tasks() []service.Task {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshot()
}

func (s *FakeServer) snapshot() []service.Task {
	out := make([]service.Task, len(s.tasks))
	for i, t := range s.tasks {
		t.Overdue = overdue(t)
		out[i] = t
	}
	return out
}

func (s *FakeServer) index(id string) int {
	for i, t := range s.tasks {
		if t.ID == id {
			return i
		}
	}
	return -1
}

func (s *FakeServer) recordRequest(c *gin.Context) {
	body, _ := io.ReadAll(c.Request.Body)
	c.Request.Body = io.NopCloser(strings.NewReader(string(body)))

	s.mu.Lock()
	s.requests = append(s.requests, Request{
		Method:        c.Request.Method,
		URI:           c.Request.URL.RequestURI(),
		Authorization: c.GetHeader("Authorization"),
		ContentType:   c.GetHeader("Content-Type"),
		Body:          string(body),
	})
	s.mu.Unlock()
	c.Next()
}

func (s *FakeServer) injectFailure(c *gin.Context) {
	s.mu.Lock()
	f, ok := s.failures[c.Request.URL.Path]
	s.mu.Unlock()
	if ok {
		c.String(f.status, f.body)
		c.Abort()
		return
	}
	c.Next()
}

func (s *FakeServer) requireBearer(c *gin.Context) {
	header := c.GetHeader("Authorization")
	token, ok := strings.CutPrefix(header, "Bearer ")
	if !ok || token == "" || (s.Token != "" && token != s.Token) {
		c.String(http.StatusUnauthorized, "")
		c.Abort()
		return
	}
	c.Next()
}

func (s *FakeServer) handleLogin(c *gin.Context) {
	var creds service.Credentials
	if err := c.ShouldBindJSON(&creds); err != nil {
		c.String(http.StatusBadRequest, "Malformed request")
		return
	}
	s.mu.Lock()
	pw, ok := s.users[creds.Email]
	s.mu.Unlock()
	if !ok || pw != creds.Password {
		c.String(http.StatusUnauthorized, "Invalid email or password")
		return
	}
	c.JSON(http.StatusOK, service.Tokens{
		AccessToken:  "access-" + uuid.NewString(),
		RefreshToken: "refresh-" + uuid.NewString(),
	})
}

func (s *FakeServer) handleRegister(c *gin.Context) {
	var creds service.Credentials
	if err := c.ShouldBindJSON(&creds); err != nil {
		c.String(http.StatusBadRequest, "Malformed request")
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.users[creds.Email]; exists {
		c.String(http.StatusBadRequest, "Email already registered")
		return
	}
	s.users[creds.Email] = creds.Password
	c.JSON(http.StatusOK, gin.H{"email": creds.Email})
}

func (s *FakeServer) handleAll(c *gin.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c.JSON(http.StatusOK, s.snapshot())
}

func (s *FakeServer) handleFilter(c *gin.Context) {
	f := service.Filter{
		Keyword:     c.Query("keyword"),
		Category:    service.Category(c.Query("category")),
		Priority:    service.Priority(c.Query("priority")),
		Status:      service.Status(c.Query("status")),
		OverdueOnly: c.Query("overdue") == "true",
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	out := []service.Task{}
	for _, t := range s.snapshot() {
		if matches(t, f) {
			out = append(out, t)
		}
	}
	c.JSON(http.StatusOK, out)
}

func (s *FakeServer) handleSort(c *gin.Context) {
	ids := c.QueryArray("taskIds")
	sortSpec := service.Sort{
		Key:       service.SortKey(c.Query("sortBy")),
		Ascending: c.DefaultQuery("ascending", "true") == "true",
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	all := s.snapshot()
	out := make([]service.Task, 0, len(ids))
	for _, id := range ids {
		i := s.index(id)
		if i < 0 {
			c.String(http.StatusInternalServerError, "Task not found: "+id)
			return
		}
		out = append(out, all[i])
	}
	sortTasks(out, sortSpec)
	c.JSON(http.StatusOK, out)
}

func (s *FakeServer) handleAdd(c *gin.Context) {
	var d service.Draft
	if err := c.ShouldBindJSON(&d); err != nil {
		c.String(http.StatusBadRequest, err.Error())
		return
	}
	if strings.TrimSpace(d.Title) == "" {
		c.String(http.StatusBadRequest, "title must not be blank")
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.created++
	t := service.Task{
		ID:          uuid.NewString(),
		Title:       d.Title,
		Description: d.Description,
		Status:      d.Status,
		Priority:    d.Priority,
		Category:    d.Category,
		DueDate:     d.DueDate,
		CreatedAt:   fmt.Sprintf("2024-01-01T00:00:%02d", s.created),
	}
	if t.Status == "" {
		t.Status = service.StatusCreated
	}
	s.tasks = append(s.tasks, t)
	t.Overdue = overdue(t)
	c.JSON(http.StatusOK, t)
}

func (s *FakeServer) handleEdit(c *gin.Context) {
	var p service.Patch
	if err := c.ShouldBindJSON(&p); err != nil {
		c.String(http.StatusBadRequest, err.Error())
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.index(c.Param("id"))
	if i < 0 {
		c.String(http.StatusInternalServerError, "Task not found")
		return
	}
	t := &s.tasks[i]
	t.Title = p.Title
	t.Description = p.Description
	t.DueDate = p.DueDate
	t.Priority = p.Priority
	t.Category = p.Category
	out := *t
	out.Overdue = overdue(out)
	c.JSON(http.StatusOK, out)
}

func (s *FakeServer) handleDelete(c *gin.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.index(c.Param("id"))
	if i < 0 {
		c.String(http.StatusInternalServerError, "Task not found")
		return
	}
	s.tasks = append(s.tasks[:i], s.tasks[i+1:]...)
	c.Status(http.StatusOK)
}

func (s *FakeServer) handleStatus(target service.Status) gin.HandlerFunc {
	return func(c *gin.Context) {
		s.mu.Lock()
		defer s.mu.Unlock()
		i := s.index(c.Param("id"))
		if i < 0 {
			c.String(http.StatusInternalServerError, "Task not found")
			return
		}
		s.tasks[i].Status = target
		c.Status(http.StatusOK)
	}
}
