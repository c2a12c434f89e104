package service

import (
	"context"
	"encoding/json"
	"fmt"

	"currency_agent_back/models"
	"currency_agent_back/pkg/repository"
	"currency_agent_back/pkg/tools"
	"currency_agent_back/pkg/utils"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/tmc/langchaingo/llms"
)

const DefaultMaxToolRounds = 2

var ErrEmptyModelResponse = errors.New("model returned no choices")

type AgentOptions struct {
	Temperature float64
	// MaxToolRounds — сколько раз подряд выполняем вызовы инструментов, прежде чем взять текст модели как итоговый.
	MaxToolRounds int
}

type ConversionService struct {
	model    llms.Model
	registry *tools.Registry
	repos    repository.Conversions
	opts     AgentOptions
}

func NewConversionService(model llms.Model, registry *tools.Registry, repos repository.Conversions, opts AgentOptions) *ConversionService {
	if opts.MaxToolRounds <= 0 {
		opts.MaxToolRounds = DefaultMaxToolRounds
	}
	return &ConversionService{
		model:    model,
		registry: registry,
		repos:    repos,
		opts:     opts,
	}
}

func conversionPrompt(req models.ConversionRequest) string {
	amount := utils.FormatAmount(req.Amount)
	return fmt.Sprintf("What is the conversion factor between %s and %s, and based on that can you convert %s %s to %s",
		req.BaseCurrency, req.TargetCurrency, amount, req.BaseCurrency, req.TargetCurrency)
}

func (s *ConversionService) Convert(ctx context.Context, req models.ConversionRequest) (models.ConversionResponse, error) {
	res, err := s.run(ctx, req)
	s.record(ctx, req, res, err)
	return res, err
}

func (s *ConversionService) run(ctx context.Context, req models.ConversionRequest) (models.ConversionResponse, error) {
	log := logrus.WithFields(logrus.Fields{
		"base":   req.BaseCurrency,
		"target": req.TargetCurrency,
		"amount": req.Amount,
	})

	messages := []llms.MessageContent{
		llms.TextParts(llms.ChatMessageTypeHuman, conversionPrompt(req)),
	}
	state := &tools.State{}

	choice, err := s.generate(ctx, messages)
	if err != nil {
		return models.ConversionResponse{}, err
	}

	for round := 0; len(choice.ToolCalls) > 0 && round < s.opts.MaxToolRounds; round++ {
		messages = append(messages, aiMessage(choice))

		for _, call := range choice.ToolCalls {
			if call.FunctionCall == nil {
				continue
			}
			log.WithField("tool", call.FunctionCall.Name).Info("Модель вызвала инструмент")

			result, err := s.registry.Execute(ctx, state, call.FunctionCall.Name, json.RawMessage(call.FunctionCall.Arguments))
			if errors.Is(err, tools.ErrUnknownTool) {
				log.WithField("tool", call.FunctionCall.Name).Warn("Неизвестный инструмент")
				result = err.Error()
			} else if err != nil {
				return models.ConversionResponse{}, err
			}

			messages = append(messages, llms.MessageContent{
				Role: llms.ChatMessageTypeTool,
				Parts: []llms.ContentPart{llms.ToolCallResponse{
					ToolCallID: call.ID,
					Name:       call.FunctionCall.Name,
					Content:    result,
				}},
			})
		}

		choice, err = s.generate(ctx, messages)
		if err != nil {
			return models.ConversionResponse{}, err
		}
	}

	if len(choice.ToolCalls) > 0 {
		log.WithFields(logrus.Fields{
			"max_tool_rounds": s.opts.MaxToolRounds,
			"pending_calls":   len(choice.ToolCalls),
		}).Warn("Исчерпан лимит раундов инструментов, оставшиеся вызовы не выполнены")
	}
	if state.ConversionRate == nil {
		log.Warn("Модель не запросила курс, conversion_rate будет null")
	}

	return models.ConversionResponse{
		Success:         true,
		BaseCurrency:    req.BaseCurrency,
		TargetCurrency:  req.TargetCurrency,
		Amount:          req.Amount,
		ConversionRate:  state.ConversionRate,
		ConvertedAmount: state.ConvertedAmount,
		AIResponse:      choice.Content,
	}, nil
}

func (s *ConversionService) generate(ctx context.Context, messages []llms.MessageContent) (*llms.ContentChoice, error) {
	resp, err := s.model.GenerateContent(ctx, messages,
		llms.WithTools(s.registry.Definitions()),
		llms.WithTemperature(s.opts.Temperature),
	)
	if err != nil {
		return nil, errors.Wrap(err, "llm request failed")
	}
	if resp == nil || len(resp.Choices) == 0 || resp.Choices[0] == nil {
		return nil, ErrEmptyModelResponse
	}
	return resp.Choices[0], nil
}

// aiMessage повторяет ответ модели в истории, чтобы ответы инструментов ссылались на её tool_call id.
func aiMessage(choice *llms.ContentChoice) llms.MessageContent {
	msg := llms.MessageContent{Role: llms.ChatMessageTypeAI}
	if choice.Content != "" {
		msg.Parts = append(msg.Parts, llms.TextContent{Text: choice.Content})
	}
	for _, call := range choice.ToolCalls {
		msg.Parts = append(msg.Parts, call)
	}
	return msg
}

func (s *ConversionService) record(ctx context.Context, req models.ConversionRequest, res models.ConversionResponse, convErr error) {
	record := models.ConversionRecord{
		BaseCurrency:    req.BaseCurrency,
		TargetCurrency:  req.TargetCurrency,
		Amount:          req.Amount,
		ConversionRate:  res.ConversionRate,
		ConvertedAmount: res.ConvertedAmount,
		AIResponse:      res.AIResponse,
		Success:         convErr == nil,
	}
	if convErr != nil {
		record.Error = convErr.Error()
	}

	if _, err := s.repos.Save(context.WithoutCancel(ctx), record); err != nil {
		logrus.WithError(err).Error("Не удалось сохранить конвертацию в историю")
	}
}
