package slack

import (
	"context"
	"fmt"
	"log"
	"os"
	"sync"

	"github.com/slack-go/slack"
	"github.com/slack-go/slack/socketmode"
)

// Manager manages the Slack client and Socket Mode connection lifecycle.
type Manager struct {
	mu sync.RWMutex

	client       *slack.Client
	socketClient *socketmode.Client

	// Event handler - receives both socket client and regular client
	eventHandler func(*socketmode.Client, *slack.Client)

	stopChan chan struct{}
	doneChan chan struct{}
	running  bool
}

// NewManager creates a new Slack manager
func NewManager() *Manager {
	return &Manager{}
}

// GetClient returns the current Slack client (may be nil if not started)
func (m *Manager) GetClient() *slack.Client {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.client
}

// IsRunning returns true if Socket Mode is currently active
func (m *Manager) IsRunning() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.running
}

// SetEventHandler sets the function that will handle socket mode events.
// The handler receives both the socket mode client and the regular client.
func (m *Manager) SetEventHandler(handler func(*socketmode.Client, *slack.Client)) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.eventHandler = handler
}

// Start creates the clients from the given tokens and opens the Socket Mode
// connection. botToken is the xoxb- token, appToken the xapp- token.
func (m *Manager) Start(ctx context.Context, botToken, appToken string) error {
	if botToken == "" || appToken == "" {
		return fmt.Errorf("slack bot token and app token are required")
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if m.running {
		return fmt.Errorf("slack manager already running")
	}

	m.client = slack.New(
		botToken,
		slack.OptionDebug(false),
		slack.OptionAppLevelToken(appToken),
	)

	m.socketClient = socketmode.New(
		m.client,
		socketmode.OptionDebug(false),
		socketmode.OptionLog(log.New(os.Stdout, "socketmode: ", log.Lshortfile|log.LstdFlags)),
	)

	m.stopChan = make(chan struct{})
	m.doneChan = make(chan struct{})

	// Start the event handler if set - pass both clients to avoid deadlock
	if m.eventHandler != nil {
		m.eventHandler(m.socketClient, m.client)
	}

	go func() {
		defer close(m.doneChan)
		log.Printf("SlackManager: Starting Socket Mode connection...")

		if err := m.socketClient.RunContext(ctx); err != nil {
			select {
			case <-m.stopChan:
				log.Printf("SlackManager: Socket Mode stopped gracefully")
			default:
				log.Printf("SlackManager: Socket Mode error: %v", err)
			}
		}
	}()

	m.running = true
	log.Printf("SlackManager: Slack integration is ACTIVE")
	return nil
}

// Stop gracefully stops the Slack connection
func (m *Manager) Stop() {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.running {
		return
	}

	log.Printf("SlackManager: Stopping Slack connection...")
	close(m.stopChan)

	select {
	case <-m.doneChan:
		log.Printf("SlackManager: Socket Mode stopped")
	default:
		log.Printf("SlackManager: Socket Mode stop signal sent")
	}

	m.running = false
	m.client = nil
	m.socketClient = nil
}
