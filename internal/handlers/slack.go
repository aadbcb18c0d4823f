package handlers

import (
	"log"
	"strings"
	"sync"

	"github.com/sirenbot/sirenbot/internal/classifier"
	"github.com/sirenbot/sirenbot/internal/extraction"
	"github.com/sirenbot/sirenbot/internal/incident"
	"github.com/sirenbot/sirenbot/internal/summary"
	"github.com/sirenbot/sirenbot/internal/vocabulary"
	"github.com/slack-go/slack"
	"github.com/slack-go/slack/slackevents"
	"github.com/slack-go/slack/socketmode"
)

// Interactive button action IDs on the confirmation prompt.
const (
	ActionConfirmIncident = "confirm_incident"
	ActionIgnoreIncident  = "ignore_incident"
)

// ResolveCommand is the slash command that closes the channel's incident.
const ResolveCommand = "/resolve-incident"

// Bare replies that count as accepting a pending ownership request.
var ownerAffirmations = map[string]bool{
	"yes": true, "ok": true, "okay": true, "sure": true, "i will": true,
}

// IncidentHandler wires Slack events to the detection-and-tracking pipeline:
// classify each message, extract fields, merge them into the per-channel
// incident record, and keep the pinned summary up to date through the
// gateway.
type IncidentHandler struct {
	gateway   Gateway
	store     *incident.Store
	extractor *extraction.Extractor
	vocab     *vocabulary.Vocabulary

	// channel_id -> original message text, for MEDIUM confirmation flows
	pending   map[string]string
	pendingMu sync.Mutex

	botUserID string // for self-message filtering
}

// NewIncidentHandler creates the handler around its collaborators.
func NewIncidentHandler(gateway Gateway, store *incident.Store, extractor *extraction.Extractor, vocab *vocabulary.Vocabulary) *IncidentHandler {
	return &IncidentHandler{
		gateway:   gateway,
		store:     store,
		extractor: extractor,
		vocab:     vocab,
		pending:   make(map[string]string),
	}
}

// SetBotUserID sets the bot's user ID so its own messages are ignored.
func (h *IncidentHandler) SetBotUserID(botUserID string) {
	h.botUserID = botUserID
}

// HandleSocketMode starts consuming Socket Mode events. Each event is acked
// immediately to avoid Slack retries and processed in its own goroutine.
func (h *IncidentHandler) HandleSocketMode(socketClient *socketmode.Client) {
	go func() {
		for evt := range socketClient.Events {
			switch evt.Type {
			case socketmode.EventTypeEventsAPI:
				eventsAPIEvent, ok := evt.Data.(slackevents.EventsAPIEvent)
				if !ok {
					log.Printf("Ignored %+v\n", evt)
					continue
				}
				socketClient.Ack(*evt.Request)
				go h.handleEventsAPI(eventsAPIEvent)

			case socketmode.EventTypeInteractive:
				callback, ok := evt.Data.(slack.InteractionCallback)
				if !ok {
					log.Printf("Ignored %+v\n", evt)
					continue
				}
				socketClient.Ack(*evt.Request)
				go h.handleInteraction(callback)

			case socketmode.EventTypeSlashCommand:
				cmd, ok := evt.Data.(slack.SlashCommand)
				if !ok {
					log.Printf("Ignored %+v\n", evt)
					continue
				}
				socketClient.Ack(*evt.Request)
				go h.handleSlashCommand(cmd)

			case socketmode.EventTypeConnecting, socketmode.EventTypeConnected, socketmode.EventTypeHello:
				// Connection lifecycle noise

			default:
				log.Printf("Unexpected event type received: %s\n", evt.Type)
			}
		}
	}()
}

// handleEventsAPI processes Events API events
func (h *IncidentHandler) handleEventsAPI(event slackevents.EventsAPIEvent) {
	switch event.Type {
	case slackevents.CallbackEvent:
		switch ev := event.InnerEvent.Data.(type) {
		case *slackevents.AppMentionEvent:
			h.handleAppMention(ev)
		case *slackevents.MessageEvent:
			// Ignore bot messages and message subtypes (edits, deletes, etc.)
			if ev.BotID != "" || ev.SubType != "" {
				return
			}
			h.HandleMessage(ev.Channel, ev.User, ev.Text)
		}
	}
}

func (h *IncidentHandler) handleAppMention(event *slackevents.AppMentionEvent) {
	if err := h.gateway.PostMessage(event.Channel, "👀 I am tracking this incident."); err != nil {
		log.Printf("Error replying to app mention in %s: %v", event.Channel, err)
	}
}

// HandleMessage is the core per-message pipeline. When no incident is active
// the classifier gates what happens: LOW is dropped, MEDIUM asks the channel
// for confirmation, HIGH starts tracking immediately. Once an incident is
// active every message in the channel feeds the field-extraction merge so
// ongoing incidents keep accumulating detail.
func (h *IncidentHandler) HandleMessage(channelID, userID, text string) {
	if text == "" || userID == "" || userID == h.botUserID {
		return
	}

	if h.store.GetActive(channelID) == nil {
		switch classifier.Classify(text, h.vocab) {
		case classifier.VerdictLow:
			return

		case classifier.VerdictMedium:
			h.askConfirmation(channelID, text)
			return
		}
		// HIGH: fall through and start tracking
	}

	h.trackMessage(channelID, userID, text)
}

// askConfirmation posts the Track/Ignore prompt once per channel; further
// MEDIUM detections while one is pending are ignored.
func (h *IncidentHandler) askConfirmation(channelID, text string) {
	h.pendingMu.Lock()
	if _, exists := h.pending[channelID]; exists {
		h.pendingMu.Unlock()
		return
	}
	h.pending[channelID] = text
	h.pendingMu.Unlock()

	if err := h.gateway.PostConfirmationPrompt(channelID, h.detectedLine(text)); err != nil {
		log.Printf("Error posting confirmation prompt in %s: %v", channelID, err)
		h.pendingMu.Lock()
		delete(h.pending, channelID)
		h.pendingMu.Unlock()
	}
}

// detectedLine returns the line that tripped the classifier, for quoting in
// the confirmation prompt.
func (h *IncidentHandler) detectedLine(text string) string {
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if classifier.ClassifyLine(line, h.vocab) != classifier.VerdictLow {
			return line
		}
	}
	return strings.TrimSpace(text)
}

// trackMessage runs the HIGH path: extract fields, merge them into the
// channel's record (creating it if needed) and refresh the pinned summary.
func (h *IncidentHandler) trackMessage(channelID, userID, text string) {
	// A bare affirmation from the user who was asked to take ownership
	// assigns them as owner instead of going through field extraction.
	if ownerAffirmations[strings.ToLower(strings.TrimSpace(text))] {
		if _, ok := h.store.ConfirmPendingOwner(channelID, userID); ok {
			h.publishSummary(channelID)
			return
		}
	}

	sender := "<@" + userID + ">"
	fields := h.extractor.Extract(text, sender)
	if _, created := h.store.CreateOrMerge(channelID, fields); created {
		log.Printf("Started incident tracking in channel %s", channelID)
	}

	h.publishSummary(channelID)
}

// publishSummary renders the current record and posts or updates the pinned
// summary. The record is re-fetched from the store so the handler never acts
// on stale state.
//
// The first post races under concurrent first detections: the post happens
// before the handle is bound, and BindSummaryHandle is first-writer-wins.
// The winner pins its post; a loser's post is an orphan and is deleted best
// effort so only the canonical summary remains visible.
func (h *IncidentHandler) publishSummary(channelID string) {
	rec := h.store.GetActive(channelID)
	if rec == nil {
		return
	}

	text := summary.RenderText(rec)
	blocks := summary.RenderBlocks(rec)

	if rec.SummaryHandle != "" {
		if err := h.gateway.UpdateSummary(channelID, rec.SummaryHandle, text, blocks); err != nil {
			log.Printf("Error updating summary %s in %s: %v", rec.SummaryHandle, channelID, err)
		}
		return
	}

	handle, err := h.gateway.PostSummary(channelID, text, blocks)
	if err != nil {
		// The record keeps no handle; the next message retries the post.
		log.Printf("Error posting summary in %s: %v", channelID, err)
		return
	}

	if h.store.BindSummaryHandle(channelID, handle) {
		if err := h.gateway.Pin(channelID, handle); err != nil {
			log.Printf("Error pinning summary %s in %s: %v", handle, channelID, err)
		}
		return
	}

	if err := h.gateway.DeleteMessage(channelID, handle); err != nil {
		log.Printf("Error deleting orphaned summary %s in %s: %v", handle, channelID, err)
	}
}

// handleInteraction processes the confirmation prompt buttons.
func (h *IncidentHandler) handleInteraction(callback slack.InteractionCallback) {
	if callback.Type != slack.InteractionTypeBlockActions || len(callback.ActionCallback.BlockActions) == 0 {
		return
	}

	channelID := callback.Channel.ID
	userID := callback.User.ID

	switch callback.ActionCallback.BlockActions[0].ActionID {
	case ActionConfirmIncident:
		h.ConfirmIncident(channelID, userID)
	case ActionIgnoreIncident:
		h.IgnoreIncident(channelID)
	}
}

// ConfirmIncident handles the Track button: the original message text is
// replayed through the HIGH path, and the channel is told tracking started.
func (h *IncidentHandler) ConfirmIncident(channelID, userID string) {
	h.pendingMu.Lock()
	text, ok := h.pending[channelID]
	delete(h.pending, channelID)
	h.pendingMu.Unlock()

	if !ok {
		return
	}

	h.trackMessage(channelID, userID, text)

	if err := h.gateway.PostMessage(channelID, "🚨 Incident tracking has started."); err != nil {
		log.Printf("Error posting tracking-started message in %s: %v", channelID, err)
	}
}

// IgnoreIncident handles the Ignore button: the pending detection is
// discarded without touching the store.
func (h *IncidentHandler) IgnoreIncident(channelID string) {
	h.pendingMu.Lock()
	delete(h.pending, channelID)
	h.pendingMu.Unlock()
}

func (h *IncidentHandler) handleSlashCommand(cmd slack.SlashCommand) {
	switch cmd.Command {
	case ResolveCommand:
		h.ResolveIncident(cmd.ChannelID, cmd.UserID)
	default:
		log.Printf("Unknown slash command: %s", cmd.Command)
	}
}

// ResolveIncident closes the channel's incident: the record is resolved and
// removed from the store, the pinned summary gets its final resolved
// rendering and is unpinned, and the channel is notified. Resolving with no
// active incident is a benign no-op reported back to the caller only.
func (h *IncidentHandler) ResolveIncident(channelID, userID string) {
	rec := h.store.Resolve(channelID)
	if rec == nil {
		if err := h.gateway.PostEphemeral(channelID, userID, "⚠️ No active incident found in this channel."); err != nil {
			log.Printf("Error posting no-active-incident notice in %s: %v", channelID, err)
		}
		return
	}

	// Any pending confirmation prompt for this channel is moot now
	h.IgnoreIncident(channelID)

	if rec.SummaryHandle != "" {
		if err := h.gateway.UpdateSummary(channelID, rec.SummaryHandle, summary.RenderText(rec), summary.RenderBlocks(rec)); err != nil {
			log.Printf("Error writing final summary %s in %s: %v", rec.SummaryHandle, channelID, err)
		}
		if err := h.gateway.Unpin(channelID, rec.SummaryHandle); err != nil {
			log.Printf("Error unpinning summary %s in %s: %v", rec.SummaryHandle, channelID, err)
		}
	}

	if err := h.gateway.PostMessage(channelID, "✅ Incident has been marked as *Resolved* and tracking has stopped."); err != nil {
		log.Printf("Error posting resolved message in %s: %v", channelID, err)
	}
}
