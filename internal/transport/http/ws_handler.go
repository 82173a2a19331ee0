package http

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"phishguard-service/internal/app"
	"phishguard-service/internal/domain"
	"github.com/gorilla/websocket"
)

// WSHandler drives the interactive quiz flow over a websocket: the client
// sends start/answer/advance, the server pushes questions, countdown ticks,
// and the final result.
type WSHandler struct {
	service  *app.TrainingService
	upgrader websocket.Upgrader
}

func NewWSHandler(service *app.TrainingService) *WSHandler {
	return &WSHandler{
		service: service,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
	}
}

type inboundMessage struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

type answerPayload struct {
	Choice domain.Answer `json:"choice"`
}

type outboundMessage[T any] struct {
	Type    string `json:"type"`
	Payload T      `json:"payload"`
}

type errorPayload struct {
	Message string `json:"message"`
}

type startedPayload struct {
	TotalQuestions int `json:"totalQuestions"`
	Remaining      int `json:"remaining"`
}

type questionPayload struct {
	Index    int            `json:"index"`
	Total    int            `json:"total"`
	Scenario publicScenario `json:"scenario"`
}

// publicScenario is the question view without the answer key.
type publicScenario struct {
	ID         string            `json:"id"`
	Category   domain.Category   `json:"category"`
	Difficulty domain.Difficulty `json:"difficulty"`
	Sender     string            `json:"sender,omitempty"`
	Subject    string            `json:"subject,omitempty"`
	Body       string            `json:"body,omitempty"`
}

type tickPayload struct {
	Remaining int `json:"remaining"`
}

// ServeWS upgrades HTTP requests to websockets and wires them into the quiz flow.
func (h *WSHandler) ServeWS(w http.ResponseWriter, r *http.Request) {
	userID := r.URL.Query().Get("userId")
	if userID == "" {
		http.Error(w, "missing userId", http.StatusBadRequest)
		return
	}

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("ws upgrade failed: %v", err)
		return
	}
	defer conn.Close()

	send := make(chan outboundMessage[any], 16)
	closeSignals := make(chan struct{})
	writerDone := make(chan struct{})

	go func() {
		defer close(writerDone)
		for msg := range send {
			if err := conn.WriteJSON(msg); err != nil {
				log.Printf("ws write error: %v", err)
				return
			}
		}
	}()

	var cancelEvents func()
	var forwardersDone []chan struct{}
	stopEvents := func() {
		if cancelEvents != nil {
			cancelEvents()
			cancelEvents = nil
		}
	}

	for {
		var inbound inboundMessage
		if err := conn.ReadJSON(&inbound); err != nil {
			break
		}
		switch inbound.Type {
		case "start":
			stopEvents()
			session, err := h.service.StartQuiz(r.Context(), userID)
			if err != nil {
				send <- errorMessage(err)
				continue
			}
			events, cancel := session.Subscribe()
			cancelEvents = cancel
			done := make(chan struct{})
			forwardersDone = append(forwardersDone, done)
			go func() {
				defer close(done)
				forwardEvents(events, send, closeSignals)
			}()

			send <- outboundMessage[any]{Type: "started", Payload: startedPayload{
				TotalQuestions: app.QuestionsPerQuiz,
				Remaining:      session.Remaining(),
			}}
			h.sendCurrentQuestion(session, send)

		case "answer":
			var payload answerPayload
			if err := json.Unmarshal(inbound.Payload, &payload); err != nil || !payload.Choice.Valid() {
				send <- outboundMessage[any]{Type: "error", Payload: errorPayload{Message: "invalid answer payload"}}
				continue
			}
			response, err := h.service.SubmitAnswer(userID, payload.Choice)
			if err != nil {
				send <- errorMessage(err)
				continue
			}
			send <- outboundMessage[any]{Type: "answerResult", Payload: response}

		case "advance":
			result, err := h.service.Advance(r.Context(), userID)
			if err != nil {
				send <- errorMessage(err)
				continue
			}
			if result != nil {
				// The completed event reaches the client through the
				// session subscription; nothing more to push here.
				continue
			}
			session, ok := h.service.Session(userID)
			if ok {
				h.sendCurrentQuestion(session, send)
			}

		default:
			send <- outboundMessage[any]{Type: "error", Payload: errorPayload{Message: "unsupported message type"}}
		}
	}

	stopEvents()
	close(closeSignals)
	for _, done := range forwardersDone {
		<-done
	}
	close(send)
	<-writerDone
}

func (h *WSHandler) sendCurrentQuestion(session *app.Session, send chan outboundMessage[any]) {
	scenario, index, err := session.CurrentQuestion()
	if err != nil {
		return
	}
	send <- outboundMessage[any]{Type: "question", Payload: questionPayload{
		Index: index,
		Total: app.QuestionsPerQuiz,
		Scenario: publicScenario{
			ID:         scenario.ID,
			Category:   scenario.Category,
			Difficulty: scenario.Difficulty,
			Sender:     scenario.Sender,
			Subject:    scenario.Subject,
			Body:       scenario.Body,
		},
	}}
}

func forwardEvents(events <-chan app.Event, send chan outboundMessage[any], closeSignals chan struct{}) {
	for {
		select {
		case event, ok := <-events:
			if !ok {
				return
			}
			msg := outboundMessage[any]{Type: string(event.Type)}
			switch event.Type {
			case app.EventTick:
				msg.Payload = tickPayload{Remaining: event.Remaining}
			case app.EventCompleted:
				msg.Payload = event.Result
			}
			select {
			case send <- msg:
			case <-closeSignals:
				return
			}
		case <-closeSignals:
			return
		}
	}
}

func errorMessage(err error) outboundMessage[any] {
	msg := err.Error()
	switch {
	case errors.Is(err, domain.ErrInsufficientPool),
		errors.Is(err, domain.ErrInvalidTransition),
		errors.Is(err, domain.ErrSessionNotFound):
		// sentinel text is already client-friendly
	default:
		msg = "internal error"
	}
	return outboundMessage[any]{Type: "error", Payload: errorPayload{Message: msg}}
}
