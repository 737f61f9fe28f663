package handlers

import (
	tgbot "github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"

	"github.com/edgard/empleobot/internal/broadcast"
	"github.com/edgard/empleobot/internal/config"
)

// RegisteredHandler represents a command handler with its description and middleware.
// It encapsulates all information needed to register and document a command.
type RegisteredHandler struct {
	HandlerType tgbot.HandlerType
	Pattern     string
	Handler     tgbot.HandlerFunc
	Middleware  []tgbot.Middleware
	MatchType   tgbot.MatchType
}

func command(pattern string, handler tgbot.HandlerFunc, mw ...tgbot.Middleware) RegisteredHandler {
	return RegisteredHandler{
		HandlerType: tgbot.HandlerTypeMessageText,
		Pattern:     pattern,
		Handler:     handler,
		MatchType:   tgbot.MatchTypeCommandStartOnly,
		Middleware:  mw,
	}
}

func callback(data string, handler tgbot.HandlerFunc, mw ...tgbot.Middleware) RegisteredHandler {
	return RegisteredHandler{
		HandlerType: tgbot.HandlerTypeCallbackQueryData,
		Pattern:     data,
		Handler:     handler,
		MatchType:   tgbot.MatchTypeExact,
		Middleware:  mw,
	}
}

// RegisterAllCommands initializes and returns a map of all available bot
// commands and menu buttons. Free text is served by NewTextHandler as the
// bot's default handler.
func RegisterAllCommands(deps HandlerDeps) map[string]RegisteredHandler {
	handlers := make(map[string]RegisteredHandler)

	help := NewHelpHandler(deps)
	offerForm := NewOfferFormHandler(deps)
	candidateForm := NewCandidateFormHandler(deps)

	handlers["/start"] = command("start", NewStartHandler(deps))
	handlers["/menu"] = command("menu", NewMenuHandler(deps))
	handlers["/help"] = command("help", help)
	handlers["/ayuda"] = command("ayuda", help)
	handlers["/ofertar"] = command("ofertar", offerForm)
	handlers["/buscoempleo"] = command("buscoempleo", candidateForm)
	handlers["/cancelar"] = command("cancelar", NewCancelHandler(deps))
	handlers["/buscar"] = command("buscar", NewOffersHandler(deps, false))
	handlers["/candidatos"] = command("candidatos", NewCandidatesHandler(deps, false))
	handlers["/notificaciones"] = command("notificaciones", NewNotificationsHandler(deps))

	handlers["cb:"+TokenStartOffer] = callback(TokenStartOffer, offerForm)
	handlers["cb:"+TokenStartCandidate] = callback(TokenStartCandidate, candidateForm)
	handlers["cb:"+TokenShowOffers] = callback(TokenShowOffers, NewOffersHandler(deps, true))
	handlers["cb:"+TokenShowCandidates] = callback(TokenShowCandidates, NewCandidatesHandler(deps, true))
	handlers["cb:"+TokenMoreOffers] = callback(TokenMoreOffers, NewOffersHandler(deps, false))
	handlers["cb:"+TokenMoreCandidates] = callback(TokenMoreCandidates, NewCandidatesHandler(deps, false))
	handlers["cb:"+TokenHelp] = callback(TokenHelp, help)

	adminOnly := AdminOnly(deps)

	handlers["/difundir"] = command("difundir", NewBroadcastHandler(deps), adminOnly)

	broadcastCallback := NewBroadcastCallbackHandler(deps)
	for _, prefix := range []string{broadcast.ConfirmPrefix, broadcast.CancelPrefix} {
		h := callback(prefix, broadcastCallback, adminOnly)
		h.MatchType = tgbot.MatchTypePrefix
		handlers["cb:"+prefix] = h
	}

	return handlers
}

// BotCommands returns the command menu published with setMyCommands.
// /difundir is left out since only admins can use it.
func BotCommands(cmds config.CommandsConfig) []models.BotCommand {
	all := []models.BotCommand{
		{Command: "start", Description: cmds.Start},
		{Command: "menu", Description: cmds.Menu},
		{Command: "ofertar", Description: cmds.Offer},
		{Command: "buscar", Description: cmds.Search},
		{Command: "buscoempleo", Description: cmds.Candidate},
		{Command: "candidatos", Description: cmds.Candidates},
		{Command: "cancelar", Description: cmds.Cancel},
		{Command: "notificaciones", Description: cmds.Notifications},
		{Command: "help", Description: cmds.Help},
	}

	out := all[:0]
	for _, c := range all {
		if c.Description != "" {
			out = append(out, c)
		}
	}
	return out
}
