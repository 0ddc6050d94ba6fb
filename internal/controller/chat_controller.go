package controller

import (
	"rag-chat-be/internal/dto"
	"rag-chat-be/internal/pkg/serverutils"
	"rag-chat-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IChatController interface {
	RegisterRoutes(r fiber.Router)
	SendChat(ctx *fiber.Ctx) error
	GetChatHistory(ctx *fiber.Ctx) error
	ListConversations(ctx *fiber.Ctx) error
}

type chatController struct {
	chatService service.IChatService
}

func NewChatController(chatService service.IChatService) IChatController {
	return &chatController{
		chatService: chatService,
	}
}

func (c *chatController) RegisterRoutes(r fiber.Router) {
	r.Post("/chat", c.SendChat)
	r.Get("/chat/history/:conversation_id", c.GetChatHistory)
	r.Get("/conversations", c.ListConversations)
}

func (c *chatController) SendChat(ctx *fiber.Ctx) error {
	var req dto.SendChatRequest
	if err := ctx.BodyParser(&req); err != nil {
		return serverutils.NewValidationError("Invalid request body.")
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.chatService.SendChat(ctx.Context(), &req)
	if err != nil {
		return err
	}

	return ctx.JSON(res)
}

func (c *chatController) GetChatHistory(ctx *fiber.Ctx) error {
	conversationId := ctx.Params("conversation_id")

	res, err := c.chatService.GetChatHistory(ctx.Context(), conversationId)
	if err != nil {
		return err
	}

	return ctx.JSON(res)
}

func (c *chatController) ListConversations(ctx *fiber.Ctx) error {
	res, err := c.chatService.ListConversations(ctx.Context())
	if err != nil {
		return err
	}

	return ctx.JSON(res)
}
