package http

import (
	"github.com/gin-gonic/gin"

	"book-chatbot/internal/chat"
	"book-chatbot/pkg/response"
)

// SendMessage godoc
// @Summary     Send a chat message
// @Description Matches the message, returns the bot reply and persists the exchange. Starts a session when the cookie is missing or expired.
// @Tags        Chat
// @Accept      json
// @Produce     json
// @Param       body body sendReq true "User message"
// @Success     200  {object} sendResp
// @Failure     400  {object} response.Resp "Bad Request"
// @Failure     429  {object} response.Resp "Too Many Requests"
// @Failure     500  {object} response.Resp "Internal Server Error"
// @Router      /api/v1/chat/messages [POST]
func (h *handler) SendMessage(c *gin.Context) {
	ctx := c.Request.Context()

	req, err := h.processSendReq(c)
	if err != nil {
		response.Error(c, err, nil)
		return
	}

	output, err := h.uc.Send(ctx, req.toInput(h.sessionID(c)))
	if err != nil {
		h.l.Errorf(ctx, "uc.Send: %v", err)
		response.Error(c, h.mapError(err), nil)
		return
	}

	h.setSessionCookie(c, output.Session.ID)
	response.OK(c, h.newSendResp(output))
}

// NewSession godoc
// @Summary     Start a new chat
// @Description Drops the current session and starts an empty one.
// @Tags        Chat
// @Produce     json
// @Success     200 {object} sessionResp
// @Failure     500 {object} response.Resp "Internal Server Error"
// @Router      /api/v1/chat/sessions [POST]
func (h *handler) NewSession(c *gin.Context) {
	ctx := c.Request.Context()

	sess, err := h.uc.StartSession(ctx, chat.StartSessionInput{PreviousID: h.sessionID(c)})
	if err != nil {
		h.l.Errorf(ctx, "uc.StartSession: %v", err)
		response.Error(c, h.mapError(err), nil)
		return
	}

	h.setSessionCookie(c, sess.ID)
	response.OK(c, h.newSessionResp(sess))
}

// CurrentSession godoc
// @Summary     Get the current session
// @Description Returns the session named by the cookie, including its transcript.
// @Tags        Chat
// @Produce     json
// @Success     200 {object} sessionResp
// @Failure     404 {object} response.Resp "Not Found"
// @Failure     500 {object} response.Resp "Internal Server Error"
// @Router      /api/v1/chat/sessions/current [GET]
func (h *handler) CurrentSession(c *gin.Context) {
	ctx := c.Request.Context()

	sess, err := h.uc.Session(ctx, h.sessionID(c))
	if err != nil {
		response.Error(c, h.mapError(err), nil)
		return
	}

	response.OK(c, h.newSessionResp(sess))
}

// ListConversations godoc
// @Summary     List saved conversations
// @Description Returns saved conversation files, newest first.
// @Tags        Chat
// @Produce     json
// @Success     200 {object} conversationListResp
// @Failure     500 {object} response.Resp "Internal Server Error"
// @Router      /api/v1/chat/conversations [GET]
func (h *handler) ListConversations(c *gin.Context) {
	ctx := c.Request.Context()

	list, err := h.uc.ListConversations(ctx)
	if err != nil {
		h.l.Errorf(ctx, "uc.ListConversations: %v", err)
		response.Error(c, h.mapError(err), nil)
		return
	}

	response.OK(c, h.newConversationListResp(list))
}

// GetConversation godoc
// @Summary     Get a saved conversation
// @Description Loads a saved conversation by file name.
// @Tags        Chat
// @Produce     json
// @Param       name path string true "Conversation file name"
// @Success     200 {object} conversationResp
// @Failure     404 {object} response.Resp "Not Found"
// @Failure     500 {object} response.Resp "Internal Server Error"
// @Router      /api/v1/chat/conversations/{name} [GET]
func (h *handler) GetConversation(c *gin.Context) {
	ctx := c.Request.Context()

	conv, err := h.uc.LoadConversation(ctx, c.Param("name"))
	if err != nil {
		response.Error(c, h.mapError(err), nil)
		return
	}

	response.OK(c, h.newConversationResp(conv))
}
