package handlers

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/OsamaDeghidy/A-List-Home-Pros/internal/httperr"
	"github.com/OsamaDeghidy/A-List-Home-Pros/internal/httpresp"
	"github.com/OsamaDeghidy/A-List-Home-Pros/internal/middleware"
	"github.com/OsamaDeghidy/A-List-Home-Pros/internal/models"
	"github.com/OsamaDeghidy/A-List-Home-Pros/internal/notify"
)

// ======================================================
// HANDLER
// ======================================================

type MessagingHandler struct {
	db     *gorm.DB
	notify *notify.Dispatcher
}

func NewMessagingHandler(db *gorm.DB, dispatcher *notify.Dispatcher) *MessagingHandler {
	return &MessagingHandler{db: db, notify: dispatcher}
}

// ======================================================
// CONVERSATIONS
// ======================================================

type CreateConversationRequest struct {
	RecipientID uint   `json:"recipient_id" binding:"required"`
	Title       string `json:"title"`
}

func (h *MessagingHandler) ListConversations(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)

	var conversations []models.Conversation
	if err := h.db.
		Preload("Participants").
		Joins(
			"JOIN conversation_participants cp ON cp.conversation_id = conversations.id AND cp.user_id = ?",
			userID,
		).
		Order("conversations.updated_at DESC").
		Find(&conversations).Error; err != nil {
		httperr.Internal(c, "failed_to_list_conversations", "Could not list conversations.")
		return
	}

	httpresp.List(c, conversations)
}

func (h *MessagingHandler) CreateConversation(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)

	var req CreateConversationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid request body.")
		return
	}

	if req.RecipientID == userID {
		httperr.BadRequest(c, "invalid_recipient", "Cannot start a conversation with yourself.")
		return
	}

	var participants []models.User
	if err := h.db.Find(&participants, []uint{userID, req.RecipientID}).Error; err != nil || len(participants) != 2 {
		httperr.NotFound(c, "recipient_not_found", "Recipient not found.")
		return
	}

	conversation := models.Conversation{
		Title:        req.Title,
		Participants: participants,
	}

	if err := h.db.Create(&conversation).Error; err != nil {
		httperr.Internal(c, "failed_to_create_conversation", "Could not create the conversation.")
		return
	}

	httpresp.Created(c, conversation)
}

// ======================================================
// MESSAGES
// ======================================================

type SendMessageRequest struct {
	Content string `json:"content" binding:"required"`
}

// memberOf loads the conversation and checks the user participates.
func (h *MessagingHandler) memberOf(
	c *gin.Context,
	conversationID uint,
	userID uint,
) (*models.Conversation, bool) {

	var conversation models.Conversation
	if err := h.db.
		Preload("Participants").
		First(&conversation, conversationID).Error; err != nil {
		httperr.NotFound(c, "conversation_not_found", "Conversation not found.")
		return nil, false
	}

	for _, p := range conversation.Participants {
		if p.ID == userID {
			return &conversation, true
		}
	}

	httperr.NotFound(c, "conversation_not_found", "Conversation not found.")
	return nil, false
}

func (h *MessagingHandler) ListMessages(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	if _, ok := h.memberOf(c, id, userID); !ok {
		return
	}

	var messages []models.Message
	if err := h.db.
		Preload("Sender").
		Where("conversation_id = ?", id).
		Order("created_at ASC").
		Find(&messages).Error; err != nil {
		httperr.Internal(c, "failed_to_list_messages", "Could not list messages.")
		return
	}

	// listing marks the other side's messages as read
	h.db.Model(&models.Message{}).
		Where("conversation_id = ? AND sender_id <> ? AND read = ?", id, userID, false).
		Update("read", true)

	httpresp.List(c, messages)
}

func (h *MessagingHandler) SendMessage(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	conversation, ok := h.memberOf(c, id, userID)
	if !ok {
		return
	}

	var req SendMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid request body.")
		return
	}

	message := models.Message{
		ConversationID: conversation.ID,
		SenderID:       userID,
		Content:        req.Content,
	}

	if err := h.db.Create(&message).Error; err != nil {
		httperr.Internal(c, "failed_to_send_message", "Could not send the message.")
		return
	}

	// bump the conversation for inbox ordering
	h.db.Model(conversation).Update("updated_at", message.CreatedAt)

	recipients := make([]uint, 0, len(conversation.Participants)-1)
	for _, p := range conversation.Participants {
		if p.ID != userID {
			recipients = append(recipients, p.ID)
		}
	}

	if h.notify != nil && len(recipients) > 0 {
		h.notify.Dispatch(notify.Event{
			UserIDs:           recipients,
			Type:              models.NotificationMessage,
			Title:             "New message",
			Content:           req.Content,
			RelatedObjectID:   &message.ID,
			RelatedObjectType: "conversation",
		})
	}

	httpresp.Created(c, message)
}

func (h *MessagingHandler) UnreadCount(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)

	var count int64
	if err := h.db.Model(&models.Message{}).
		Joins(
			"JOIN conversation_participants cp ON cp.conversation_id = messages.conversation_id AND cp.user_id = ?",
			userID,
		).
		Where("messages.sender_id <> ? AND messages.read = ?", userID, false).
		Count(&count).Error; err != nil {
		httperr.Internal(c, "failed_to_count_unread", "Could not count unread messages.")
		return
	}

	c.JSON(200, gin.H{"unread": count})
}
