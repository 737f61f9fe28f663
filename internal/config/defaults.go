package config

import (
	"time"

	"github.com/spf13/viper"
)

// Default values for configuration
const (
	DefaultLogLevel = "info"
	DefaultDBPath   = "storage.db"

	DefaultRateWindow      = time.Minute
	DefaultRateMaxMessages = 5
	DefaultPageSize        = 3
	DefaultMaxAgeDays      = 15

	DefaultBroadcastDelay      = 50 * time.Millisecond // stays under Telegram's ~30 msg/s
	DefaultBroadcastPendingTTL = 15 * time.Minute

	DefaultWelcomeURL = "https://github.com/Jos3lgd/mapa-circuitos-matanzas/blob/main/empleoMTZ.jpg?raw=true"
)

// DefaultForbiddenTerms is the content filter applied to every inbound text.
var DefaultForbiddenTerms = []string{"singar", "fraude", "spam", "http://", "https://"}

// DefaultTasks are the scheduled tasks enabled out of the box.
var DefaultTasks = map[string]TaskConfig{
	"retention_sweep": {Enabled: true, Schedule: "0 0 3 * * *"},
	"sql_maintenance": {Enabled: true, Schedule: "0 30 4 * * 0"},
	"state_gc":        {Enabled: true, Schedule: "0 */10 * * * *"},
}

// DefaultMessages holds the Spanish texts shown to users.
var DefaultMessages = MessagesConfig{
	Welcome: "👋 ¡Bienvenid@ al Bot Empleo Matanzas!\n\n" +
		"💻 Este Bot está desarrollado por el equipo de @infomatanzas y está en fase Beta.\n" +
		"Usa /menu para ver opciones.",
	Help: "Hola, gracias por utilizar nuestro Bot\n\n" +
		"Puedes utilizar los comandos disponibles en el menú en la parte inferior izquierda o teclearlos:\n\n" +
		"📎 /start — Iniciar el bot\n" +
		"📋 /menu — Ver el menú interactivo\n" +
		"💼 /ofertar — Publicar una oferta de empleo\n" +
		"🔍 /buscar — Buscar ofertas publicadas\n" +
		"🧑‍💼 /buscoempleo — Registrarte como buscador de empleo\n" +
		"🔎 /candidatos — Ver personas buscando empleo\n" +
		"🔔 /notificaciones — Activar o silenciar avisos\n" +
		"❌ /cancelar — Cancelar una acción activa\n\n" +
		"👩‍💻 Este Bot está en fase Beta, si encuentras algún problema o tienes sugerencias puedes contactar con Soporte @AtencionPoblacionBot\n\n" +
		"⚠️ ATENCIÓN!!! Las ofertas se irán eliminando automáticamente cada 15 días, tenga eso en cuenta",
	Menu:    "📲 Elige una opción:",
	NoMatch: "Usa /menu para ver las opciones disponibles.",

	ContentRejected: "🚫 No se permiten enlaces o contenido sospechoso",
	RateLimited:     "⏳ Por favor, espera antes de enviar más mensajes.",
	StoreError:      "⚠️ No se puede acceder a la base de datos.",
	NotAuthorized:   "🚫 No tienes permiso para usar este comando.",

	OfferTitlePrompt:       "💼 ¿Cuál es el puesto de trabajo?",
	OfferCompanyPrompt:     "🏢 ¿Nombre de la empresa?",
	OfferSalaryPrompt:      "💰 ¿Salario ofrecido?",
	OfferDescriptionPrompt: "📝 Breve descripción del puesto:",
	OfferContactPrompt:     "📱 ¿Forma de contacto?",
	OfferPublished:         "✅ ¡Oferta publicada con éxito!",
	OfferFailed:            "❌ Error al guardar la oferta.",
	OfferCancelled:         "❌ Publicación cancelada.",

	CandidateNamePrompt:      "👤 ¿Cuál es tu nombre completo?",
	CandidateJobTypePrompt:   "🛠️ ¿Qué tipo de trabajo estás buscando?",
	CandidateEducationPrompt: "🎓 ¿Cuál es tu escolaridad o título?",
	CandidateContactPrompt:   "📞 ¿Cómo te pueden contactar?",
	CandidateRegistered:      "✅ ¡Tu perfil fue registrado correctamente!",
	CandidateFailed:          "❌ Ocurrió un error al guardar tu información.",
	CandidateCancelled:       "❌ Registro cancelado.",

	FormSuperseded:  "ℹ️ Se descartó el formulario que tenías abierto.",
	NothingToCancel: "ℹ️ No hay ninguna acción activa para cancelar.",

	NoOffers:          "😕 Aún no hay ofertas publicadas.",
	MoreOffers:        "¿Ver más ofertas?",
	AllOffersSeen:     "✅ Ya has visto todas las ofertas.",
	NoCandidates:      "😕 No hay personas registradas buscando empleo.",
	MoreCandidates:    "¿Ver más candidatos?",
	AllCandidatesSeen: "✅ Ya has visto todos los perfiles.",
	ShowMoreButton:    "➡️ Ver más",

	BroadcastUsage:     "ℹ️ Uso: /difundir <mensaje>",
	BroadcastPreview:   "📣 Se enviará este mensaje a todos los usuarios:\n\n%s",
	BroadcastConfirm:   "✅ Enviar",
	BroadcastAbort:     "❌ Cancelar",
	BroadcastExpired:   "⌛ Este envío ya no está disponible.",
	BroadcastCancelled: "❌ Envío cancelado.",
	BroadcastStarted:   "📤 Enviando mensaje a %d usuarios...",
	BroadcastSummary:   "📊 Envío terminado: %d enviados, %d fallidos de %d.",

	NotificationsOn:  "🔔 Notificaciones activadas.",
	NotificationsOff: "🔕 Notificaciones silenciadas.",

	MenuOffers:     "🔍 Ofertas de trabajo",
	MenuOffer:      "💼 Ofrecer trabajo",
	MenuCandidate:  "🧑‍💼 Solicitar trabajo",
	MenuCandidates: "🔎 Buscar trabajadores",
	MenuHelp:       "ℹ️ Ayuda",
}

// DefaultCommands holds the descriptions published in the Telegram command menu.
var DefaultCommands = CommandsConfig{
	Start:         "Iniciar el bot",
	Menu:          "Ver menú interactivo",
	Offer:         "Publicar oferta de empleo",
	Search:        "Buscar ofertas",
	Candidate:     "Registrarte como buscador de empleo",
	Candidates:    "Ver personas buscando empleo",
	Cancel:        "Cancelar una acción",
	Notifications: "Activar o silenciar avisos",
	Help:          "Ver ayuda",
}

// setDefaults registers default values for every optional key so that
// environment overrides are picked up by Unmarshal.
func setDefaults(v *viper.Viper) {
	v.SetDefault("logger.level", DefaultLogLevel)
	v.SetDefault("logger.json", false)

	v.SetDefault("telegram.token", "")
	v.SetDefault("telegram.admin_ids", []int64{})
	v.SetDefault("telegram.welcome_url", DefaultWelcomeURL)

	v.SetDefault("database.path", DefaultDBPath)

	v.SetDefault("limits.window", DefaultRateWindow)
	v.SetDefault("limits.max_messages", DefaultRateMaxMessages)
	v.SetDefault("limits.forbidden_terms", DefaultForbiddenTerms)

	v.SetDefault("listing.page_size", DefaultPageSize)

	v.SetDefault("retention.max_age_days", DefaultMaxAgeDays)
	v.SetDefault("retention.sweep_on_start", true)

	v.SetDefault("broadcast.delay", DefaultBroadcastDelay)
	v.SetDefault("broadcast.pending_ttl", DefaultBroadcastPendingTTL)

	v.SetDefault("http.addr", "")

	for name, task := range DefaultTasks {
		v.SetDefault("scheduler.tasks."+name+".enabled", task.Enabled)
		v.SetDefault("scheduler.tasks."+name+".schedule", task.Schedule)
	}
}
