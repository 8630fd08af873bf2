// Package browser manages the playwright lifecycle and the live page behind
// each engine session.
package browser

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/playwright-community/playwright-go"
	"go.uber.org/zap"

	"github.com/applyforge/applyforge/internal/config"
	"github.com/applyforge/applyforge/internal/dom"
	"github.com/applyforge/applyforge/internal/domain"
	"github.com/applyforge/applyforge/internal/observability"
	"github.com/applyforge/applyforge/internal/protocol"
)

// Session pairs a live browser page with its protocol state
type Session struct {
	Proto     *protocol.Session
	Doc       dom.Document
	Clipboard dom.Clipboard

	page       playwright.Page
	browserCtx playwright.BrowserContext
	lastUsed   time.Time
}

// URL returns the current page URL
func (s *Session) URL() string {
	return s.page.URL()
}

// Manager owns the browser process and the open sessions
type Manager struct {
	pw      *playwright.Playwright
	browser playwright.Browser
	cfg     config.BrowserConfig
	metrics *observability.Metrics
	logger  *zap.Logger

	mu       sync.Mutex
	sessions map[uuid.UUID]*Session
	stop     chan struct{}
}

// NewManager starts playwright and launches the browser
func NewManager(cfg config.BrowserConfig, metrics *observability.Metrics, logger *zap.Logger) (*Manager, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	pw, err := playwright.Run()
	if err != nil {
		return nil, fmt.Errorf("starting playwright: %w", err)
	}

	browser, err := pw.Chromium.Launch(playwright.BrowserTypeLaunchOptions{
		Headless: playwright.Bool(cfg.Headless),
	})
	if err != nil {
		pw.Stop()
		return nil, fmt.Errorf("launching browser: %w", err)
	}

	m := &Manager{
		pw:       pw,
		browser:  browser,
		cfg:      cfg,
		metrics:  metrics,
		logger:   logger,
		sessions: make(map[uuid.UUID]*Session),
		stop:     make(chan struct{}),
	}
	go m.evictLoop()

	return m, nil
}

// Open navigates a fresh page to url and returns its session
func (m *Manager) Open(ctx context.Context, url string) (*Session, error) {
	m.mu.Lock()
	if len(m.sessions) >= m.cfg.MaxSessions {
		m.mu.Unlock()
		return nil, domain.ErrSessionLimit(m.cfg.MaxSessions)
	}
	m.mu.Unlock()

	browserCtx, err := m.browser.NewContext(playwright.BrowserNewContextOptions{
		Permissions: []string{"clipboard-write"},
		Viewport:    &playwright.Size{Width: 1280, Height: 900},
	})
	if err != nil {
		return nil, domain.ErrBrowser("creating browser context", err)
	}

	page, err := browserCtx.NewPage()
	if err != nil {
		browserCtx.Close()
		return nil, domain.ErrBrowser("opening page", err)
	}

	_, err = page.Goto(url, playwright.PageGotoOptions{
		WaitUntil: playwright.WaitUntilStateDomcontentloaded,
		Timeout:   playwright.Float(float64(m.cfg.NavigationTimeout.Milliseconds())),
	})
	if err != nil {
		browserCtx.Close()
		return nil, domain.ErrNavigationFailed(url, err)
	}

	sess := &Session{
		Proto:      protocol.NewSession(),
		Doc:        dom.NewLiveDocument(page),
		Clipboard:  dom.NewPageClipboard(page),
		page:       page,
		browserCtx: browserCtx,
		lastUsed:   time.Now(),
	}

	m.mu.Lock()
	m.sessions[sess.Proto.ID] = sess
	active := len(m.sessions)
	m.mu.Unlock()

	if m.metrics != nil {
		m.metrics.SessionsOpened.Inc()
		m.metrics.SessionsActive.Set(float64(active))
	}
	m.logger.Info("session opened",
		zap.String("session_id", sess.Proto.ID.String()),
		zap.String("url", url),
		zap.Int("active", active))

	return sess, nil
}

// Get returns an open session and refreshes its idle clock
func (m *Manager) Get(id uuid.UUID) (*Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	sess, ok := m.sessions[id]
	if !ok {
		return nil, domain.ErrSessionNotFound(id.String())
	}
	sess.lastUsed = time.Now()
	return sess, nil
}

// CloseSession tears down one session's page
func (m *Manager) CloseSession(id uuid.UUID) error {
	m.mu.Lock()
	sess, ok := m.sessions[id]
	if ok {
		delete(m.sessions, id)
	}
	active := len(m.sessions)
	m.mu.Unlock()

	if !ok {
		return domain.ErrSessionNotFound(id.String())
	}

	sess.browserCtx.Close()
	if m.metrics != nil {
		m.metrics.SessionsActive.Set(float64(active))
	}
	m.logger.Info("session closed", zap.String("session_id", id.String()))
	return nil
}

// Close tears down every session and stops the browser
func (m *Manager) Close() error {
	close(m.stop)

	m.mu.Lock()
	for id, sess := range m.sessions {
		sess.browserCtx.Close()
		delete(m.sessions, id)
	}
	m.mu.Unlock()

	if m.browser != nil {
		m.browser.Close()
	}
	if m.pw != nil {
		return m.pw.Stop()
	}
	return nil
}

// evictLoop closes sessions idle past the configured TTL
func (m *Manager) evictLoop() {
	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-m.stop:
			return
		case <-ticker.C:
			m.evictIdle()
		}
	}
}

func (m *Manager) evictIdle() {
	cutoff := time.Now().Add(-m.cfg.SessionTTL)

	m.mu.Lock()
	var expired []*Session
	for id, sess := range m.sessions {
		if sess.lastUsed.Before(cutoff) {
			expired = append(expired, sess)
			delete(m.sessions, id)
		}
	}
	active := len(m.sessions)
	m.mu.Unlock()

	for _, sess := range expired {
		sess.browserCtx.Close()
		m.logger.Info("session evicted",
			zap.String("session_id", sess.Proto.ID.String()),
			zap.Duration("ttl", m.cfg.SessionTTL))
	}
	if len(expired) > 0 && m.metrics != nil {
		m.metrics.SessionsActive.Set(float64(active))
	}
}
