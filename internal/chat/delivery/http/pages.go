package http

import (
	"errors"
	"html/template"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/render"

	"book-chatbot/internal/chat"
)

const pageGreeting = "How can I help you today?"

type pageData struct {
	Greeting      string
	Turns         []chat.Turn
	Conversations []chat.ConversationInfo
	Viewing       string
	Notice        string
}

// botHTML marks bot replies as trusted markup; they are escaped when formatted.
func botHTML(text string) template.HTML {
	return template.HTML(strings.ReplaceAll(strings.TrimRight(text, "\n"), "\n", "<br>"))
}

func (h *handler) render(c *gin.Context, status int, data pageData) {
	data.Greeting = pageGreeting
	c.Render(status, render.HTML{Template: h.page, Name: "chat.html", Data: data})
}

func (h *handler) sidebar(c *gin.Context) []chat.ConversationInfo {
	list, err := h.uc.ListConversations(c.Request.Context())
	if err != nil {
		h.l.Warnf(c.Request.Context(), "chat.delivery.http.sidebar: %v", err)
		return nil
	}
	return list
}

// Index renders the chat page with the current session's transcript.
func (h *handler) Index(c *gin.Context) {
	ctx := c.Request.Context()

	data := pageData{Conversations: h.sidebar(c)}
	sess, err := h.uc.Session(ctx, h.sessionID(c))
	switch {
	case err == nil:
		data.Turns = sess.Transcript
	case !errors.Is(err, chat.ErrSessionNotFound):
		h.l.Errorf(ctx, "uc.Session: %v", err)
		data.Notice = "Something went wrong loading your chat."
		h.render(c, http.StatusInternalServerError, data)
		return
	}

	h.render(c, http.StatusOK, data)
}

// PostChat handles the chat form and redirects back to the page.
func (h *handler) PostChat(c *gin.Context) {
	ctx := c.Request.Context()

	var req sendReq
	if err := c.ShouldBind(&req); err != nil || req.validate() != nil {
		c.Redirect(http.StatusSeeOther, "/")
		return
	}

	output, err := h.uc.Send(ctx, req.toInput(h.sessionID(c)))
	if err != nil {
		h.l.Errorf(ctx, "uc.Send: %v", err)
		h.render(c, http.StatusInternalServerError, pageData{
			Conversations: h.sidebar(c),
			Notice:        "Your message could not be saved. Please try again.",
		})
		return
	}

	h.setSessionCookie(c, output.Session.ID)
	c.Redirect(http.StatusSeeOther, "/")
}

// NewChat starts a fresh session and redirects back to the page.
func (h *handler) NewChat(c *gin.Context) {
	ctx := c.Request.Context()

	sess, err := h.uc.StartSession(ctx, chat.StartSessionInput{PreviousID: h.sessionID(c)})
	if err != nil {
		h.l.Errorf(ctx, "uc.StartSession: %v", err)
		h.render(c, http.StatusInternalServerError, pageData{
			Conversations: h.sidebar(c),
			Notice:        "Could not start a new chat.",
		})
		return
	}

	h.setSessionCookie(c, sess.ID)
	c.Redirect(http.StatusSeeOther, "/")
}

// ViewConversation renders a saved conversation in place of the live transcript.
func (h *handler) ViewConversation(c *gin.Context) {
	ctx := c.Request.Context()
	name := c.Param("name")

	data := pageData{Conversations: h.sidebar(c), Viewing: name}
	conv, err := h.uc.LoadConversation(ctx, name)
	switch {
	case err == nil:
		data.Turns = conv.Turns
	case errors.Is(err, chat.ErrConversationNotFound):
		data.Notice = "Conversation not found."
		h.render(c, http.StatusNotFound, data)
		return
	default:
		h.l.Errorf(ctx, "uc.LoadConversation: %v", err)
		data.Notice = "Could not load the conversation."
		h.render(c, http.StatusInternalServerError, data)
		return
	}

	h.render(c, http.StatusOK, data)
}
