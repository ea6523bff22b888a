// Package dialogue implements the conversation state machine: it consumes
// inbound message events, advances per-sender sessions through the
// qualification flows, and produces outbound replies.
package dialogue

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"leadbot_backend/internal/bot/domain"
	"leadbot_backend/internal/bot/session"
	"leadbot_backend/internal/leads"
	"leadbot_backend/platform/apperr"
	"leadbot_backend/platform/logger"
)

// KindOther is the menu entry without an eligibility rule; choosing it ends
// the flow as not viable without persisting anything.
const KindOther = "Otro"

// kindCatalog is the collateral menu, in display order. Every entry except
// KindOther must have a configured eligibility rule.
var kindCatalog = []string{"Auto", "Maquinaria", "Reloj", KindOther}

// LeadService is the slice of the leads service the dialogue needs.
type LeadService interface {
	HasOpenLead(ctx context.Context, identity string) (bool, error)
	StartAwaitingPhotos(ctx context.Context, lead leads.NewLead) error
	UpdateOpenLead(ctx context.Context, lead leads.NewLead) error
	SavePhotos(ctx context.Context, identity string, photos []string) error
	CompleteWithPhotos(ctx context.Context, identity string, photos []string) error
	RequestAdvisor(ctx context.Context, identity, fullName string) error
}

// Engine is the dialogue state machine.
type Engine struct {
	sessions   *session.Store
	leads      LeadService
	rules      domain.RuleSet
	photoQuota int
	log        *logger.Logger
}

// New creates a dialogue engine.
func New(sessions *session.Store, leadSvc LeadService, rules domain.RuleSet, photoQuota int, log *logger.Logger) *Engine {
	return &Engine{
		sessions:   sessions,
		leads:      leadSvc,
		rules:      rules,
		photoQuota: photoQuota,
		log:        log,
	}
}

// Handle processes one inbound event and returns the replies to send back.
// Events for the same identity are strictly serialized by the session store.
func (e *Engine) Handle(ctx context.Context, in domain.Inbound) []domain.Reply {
	var replies []domain.Reply
	e.sessions.Do(in.Identity, func(sess *domain.Session) session.Outcome {
		var outcome session.Outcome
		replies, outcome = e.handle(ctx, sess, in)
		return outcome
	})
	return replies
}

func (e *Engine) handle(ctx context.Context, sess *domain.Session, in domain.Inbound) ([]domain.Reply, session.Outcome) {
	if len(in.Attachments) > 0 {
		return e.handleMedia(ctx, sess, in.Attachments)
	}

	text := strings.TrimSpace(in.Text)
	lowered := strings.ToLower(text)

	if replies, outcome, handled := e.handleInterrupt(sess, lowered); handled {
		return replies, outcome
	}

	switch sess.Flow {
	case domain.FlowQualification:
		return e.handleQualification(ctx, sess, text)
	case domain.FlowRequirements:
		return e.handleRequirements(ctx, sess, text)
	case domain.FlowAdvisor:
		return e.handleAdvisor(ctx, sess, text)
	default:
		return e.handleMenu(ctx, sess, lowered)
	}
}

// ---- Global interrupts ----

var cancelWords = map[string]bool{"cancelar": true, "salir": true, "adios": true, "adiós": true}
var resetWords = map[string]bool{"menu": true, "menú": true, "inicio": true, "reiniciar": true}

// fieldJumps lets the sender correct an already-answered step by name.
var fieldJumps = map[string]domain.Step{
	"garantia": domain.StepCollateralKind,
	"garantía": domain.StepCollateralKind,
	"año":      domain.StepCollateralYear,
	"ano":      domain.StepCollateralYear,
	"modelo":   domain.StepCollateralYear,
	"monto":    domain.StepAmount,
	"nombre":   domain.StepFullName,
	"ciudad":   domain.StepLocation,
	"fotos":    domain.StepAwaitingPhotos,
}

var jumpPrompts = map[domain.Step]string{
	domain.StepCollateralKind: msgAskKind,
	domain.StepCollateralYear: msgAskYear,
	domain.StepAmount:         msgAskAmount,
	domain.StepFullName:       msgAskName,
	domain.StepLocation:       msgAskLocation,
}

func (e *Engine) handleInterrupt(sess *domain.Session, lowered string) ([]domain.Reply, session.Outcome, bool) {
	switch {
	case cancelWords[lowered]:
		return reply(msgCancelled), session.Destroy, true

	case resetWords[lowered]:
		sess.Reset()
		return reply(msgMenu), session.Keep, true

	case lowered == "resumen":
		return reply(renderSummary(sess)), session.Keep, true
	}

	if sess.Flow == domain.FlowQualification {
		if step, ok := fieldJumps[lowered]; ok {
			// Jumping to the photo step only makes sense once the lead has
			// been written; before that it falls through as normal input.
			if step == domain.StepAwaitingPhotos {
				if sess.Step == domain.StepAwaitingPhotos {
					remaining := e.photoQuota - len(sess.Photos)
					return reply(fmt.Sprintf(msgPhotosReminder, remaining)), session.Keep, true
				}
			} else {
				sess.Step = step
				return reply(jumpPrompts[step]), session.Keep, true
			}
		}
	}

	return nil, session.Keep, false
}

func renderSummary(sess *domain.Session) string {
	type row struct{ label, key string }
	rows := []row{
		{"Garantía", domain.FieldKind},
		{"Año", domain.FieldYear},
		{"Monto", domain.FieldAmount},
		{"Nombre", domain.FieldName},
		{"Ciudad", domain.FieldLocation},
	}

	var b strings.Builder
	for _, r := range rows {
		if value, ok := sess.Fields[r.key]; ok {
			fmt.Fprintf(&b, "%s: %s\n", r.label, value)
		}
	}
	if b.Len() == 0 {
		return msgSummaryEmpty
	}
	return "Esto es lo que tengo hasta ahora:\n" + strings.TrimRight(b.String(), "\n")
}

// ---- Top-level menu ----

func (e *Engine) handleMenu(ctx context.Context, sess *domain.Session, lowered string) ([]domain.Reply, session.Outcome) {
	switch lowered {
	case "1", "prestamo", "préstamo", "solicitar":
		return e.startQualification(ctx, sess)

	case "2", "requisitos":
		sess.Flow = domain.FlowRequirements
		sess.Step = domain.StepRequirementsFollowUp
		return reply(msgRequirements), session.Keep

	case "3", "asesor":
		sess.Flow = domain.FlowAdvisor
		sess.Step = domain.StepAdvisorName
		return reply(msgAdvisorAskName), session.Keep
	}

	if isGreeting(lowered) {
		return reply(msgMenu), session.Keep
	}
	return reply(msgMenuRetry), session.Keep
}

var greetings = []string{"hola", "buenas", "buenos dias", "buenos días", "buenas tardes", "buenas noches", "hi", "hello"}

func isGreeting(lowered string) bool {
	for _, g := range greetings {
		if strings.HasPrefix(lowered, g) {
			return true
		}
	}
	return false
}

func (e *Engine) startQualification(ctx context.Context, sess *domain.Session) ([]domain.Reply, session.Outcome) {
	hasOpen, err := e.leads.HasOpenLead(ctx, sess.Identity)
	if err != nil {
		// Best-effort check: an unreachable store must not strand the user.
		e.log.PersistenceError("HasOpenLead", err)
	} else if hasOpen {
		return reply(msgPendingRequest), session.Keep
	}

	sess.Reset()
	sess.Flow = domain.FlowQualification
	sess.Step = domain.StepCollateralKind
	return reply(msgAskKind), session.Keep
}

// ---- Qualification flow ----

type stepFn func(*Engine, context.Context, *domain.Session, string) ([]domain.Reply, session.Outcome)

// qualificationSteps is the transition table of the primary flow. Each entry
// validates the input for its step and either re-prompts, terminates, or
// advances the session.
var qualificationSteps = map[domain.Step]stepFn{
	domain.StepCollateralKind: (*Engine).stepCollateralKind,
	domain.StepCollateralYear: (*Engine).stepCollateralYear,
	domain.StepAmount:         (*Engine).stepAmount,
	domain.StepConsent:        (*Engine).stepConsent,
	domain.StepFullName:       (*Engine).stepFullName,
	domain.StepLocation:       (*Engine).stepLocation,
	domain.StepAwaitingPhotos: (*Engine).stepAwaitingPhotosText,
}

func (e *Engine) handleQualification(ctx context.Context, sess *domain.Session, text string) ([]domain.Reply, session.Outcome) {
	fn, ok := qualificationSteps[sess.Step]
	if !ok {
		// Unknown step means corrupted state; start over rather than error.
		sess.Reset()
		return reply(msgMenu), session.Keep
	}
	return fn(e, ctx, sess, text)
}

func (e *Engine) stepCollateralKind(_ context.Context, sess *domain.Session, text string) ([]domain.Reply, session.Outcome) {
	kind, ok := domain.MatchChoice(text, kindCatalog)
	if !ok {
		return reply(msgKindRetry), session.Keep
	}

	if kind == KindOther {
		return reply(msgKindOther), session.Destroy
	}

	sess.Fields[domain.FieldKind] = kind
	sess.Step = domain.StepCollateralYear
	return reply(msgAskYear), session.Keep
}

func (e *Engine) stepCollateralYear(_ context.Context, sess *domain.Session, text string) ([]domain.Reply, session.Outcome) {
	year, ok := domain.ParseYear(text)
	if !ok {
		return reply(msgYearRetry), session.Keep
	}

	kind := sess.Fields[domain.FieldKind]
	rule, ok := e.rules[kind]
	if !ok {
		e.log.Warn("collateral kind has no rule", "kind", kind)
		return reply(msgNotViable), session.Destroy
	}
	if year < rule.MinYear {
		return reply(msgNotViable), session.Destroy
	}

	sess.Fields[domain.FieldYear] = strconv.Itoa(year)
	sess.Step = domain.StepAmount
	return reply(msgAskAmount), session.Keep
}

func (e *Engine) stepAmount(_ context.Context, sess *domain.Session, text string) ([]domain.Reply, session.Outcome) {
	amount, ok := domain.ParseAmount(text)
	if !ok {
		return reply(msgAmountRetry), session.Keep
	}

	kind := sess.Fields[domain.FieldKind]
	year, _ := strconv.Atoi(sess.Fields[domain.FieldYear])
	verdict := domain.Evaluate(e.rules, kind, year, amount)
	if !verdict.Viable {
		e.log.Info("lead not viable", "sender", sess.Identity, "reason", verdict.Reason)
		return reply(msgNotViable), session.Destroy
	}

	sess.Fields[domain.FieldAmount] = strconv.FormatFloat(amount, 'f', 2, 64)
	sess.Step = domain.StepConsent
	return reply(msgAskConsent), session.Keep
}

func (e *Engine) stepConsent(_ context.Context, sess *domain.Session, text string) ([]domain.Reply, session.Outcome) {
	switch domain.ClassifyYesNo(text) {
	case domain.AnswerYes:
		sess.Fields[domain.FieldConsent] = "si"
		sess.Step = domain.StepFullName
		return reply(msgAskName), session.Keep
	case domain.AnswerNo:
		return reply(msgNoConsent), session.Destroy
	default:
		return reply(msgConsentRetry), session.Keep
	}
}

func (e *Engine) stepFullName(_ context.Context, sess *domain.Session, text string) ([]domain.Reply, session.Outcome) {
	name, ok := domain.ValidName(text)
	if !ok {
		return reply(msgNameRetry), session.Keep
	}
	sess.Fields[domain.FieldName] = name
	sess.Step = domain.StepLocation
	return reply(msgAskLocation), session.Keep
}

func (e *Engine) stepLocation(ctx context.Context, sess *domain.Session, text string) ([]domain.Reply, session.Outcome) {
	location, ok := domain.ValidLocation(text)
	if !ok {
		return reply(msgLocationRetry), session.Keep
	}
	sess.Fields[domain.FieldLocation] = location

	// First durable write: the lead becomes visible to the reminder sweep
	// before any photo arrives. A failed write is logged and the dialogue
	// continues; stranding the user on a store hiccup is worse than losing
	// one progressive write. Re-completing the chain after a field-jump
	// correction updates the open record instead of appending a second one.
	if sess.LeadOpen {
		if err := e.leads.UpdateOpenLead(ctx, e.buildLead(sess)); err != nil {
			e.log.PersistenceError("UpdateOpenLead", err)
		}
	} else if err := e.leads.StartAwaitingPhotos(ctx, e.buildLead(sess)); err != nil {
		e.log.PersistenceError("StartAwaitingPhotos", err)
	} else {
		sess.LeadOpen = true
	}

	sess.Step = domain.StepAwaitingPhotos
	return reply(fmt.Sprintf(msgAskPhotos, e.photoQuota)), session.Keep
}

func (e *Engine) stepAwaitingPhotosText(_ context.Context, sess *domain.Session, _ string) ([]domain.Reply, session.Outcome) {
	remaining := e.photoQuota - len(sess.Photos)
	return reply(fmt.Sprintf(msgPhotosReminder, remaining)), session.Keep
}

func (e *Engine) buildLead(sess *domain.Session) leads.NewLead {
	year, _ := strconv.Atoi(sess.Fields[domain.FieldYear])
	amount, _ := strconv.ParseFloat(sess.Fields[domain.FieldAmount], 64)
	return leads.NewLead{
		SenderIdentity:  sess.Identity,
		FullName:        sess.Fields[domain.FieldName],
		CollateralKind:  sess.Fields[domain.FieldKind],
		CollateralYear:  year,
		RequestedAmount: amount,
		Location:        sess.Fields[domain.FieldLocation],
	}
}

// ---- Media ----

func (e *Engine) handleMedia(ctx context.Context, sess *domain.Session, batch []domain.Attachment) ([]domain.Reply, session.Outcome) {
	if sess.Flow != domain.FlowQualification || sess.Step != domain.StepAwaitingPhotos {
		return reply(msgPhotosEarly), session.Keep
	}

	res := domain.AccumulateMedia(sess, batch, e.photoQuota)
	if res.Added == 0 {
		return reply(msgPhotosOnlyImages), session.Keep
	}

	if !res.QuotaMet {
		// Sync partial batches to the open record so the reminder sweep
		// can tell a sender with some photos from one with none.
		if sess.LeadOpen {
			if err := e.leads.SavePhotos(ctx, sess.Identity, sess.Photos); err != nil {
				e.log.PersistenceError("SavePhotos", err)
			}
		}
		return reply(fmt.Sprintf(msgPhotosPending, res.Total, e.photoQuota)), session.Keep
	}

	if err := e.leads.CompleteWithPhotos(ctx, sess.Identity, sess.Photos); err != nil {
		e.log.PersistenceError("CompleteWithPhotos", err)
	}
	return reply(msgCompleted), session.Destroy
}

// ---- Side flows ----

func (e *Engine) handleRequirements(ctx context.Context, sess *domain.Session, text string) ([]domain.Reply, session.Outcome) {
	switch domain.ClassifyYesNo(text) {
	case domain.AnswerYes:
		return e.startQualification(ctx, sess)
	case domain.AnswerNo:
		return reply(msgCancelled), session.Destroy
	default:
		return reply(msgRequirementsRetry), session.Keep
	}
}

func (e *Engine) handleAdvisor(ctx context.Context, sess *domain.Session, text string) ([]domain.Reply, session.Outcome) {
	name, ok := domain.ValidName(text)
	if !ok {
		return reply(msgNameRetry), session.Keep
	}

	err := e.leads.RequestAdvisor(ctx, sess.Identity, name)
	switch {
	case apperr.Is(err, apperr.KindConflict):
		return reply(msgPendingRequest), session.Destroy
	case err != nil:
		e.log.PersistenceError("RequestAdvisor", err)
	}
	return reply(msgAdvisorDone), session.Destroy
}

func reply(texts ...string) []domain.Reply {
	replies := make([]domain.Reply, 0, len(texts))
	for _, text := range texts {
		replies = append(replies, domain.Reply{Text: text})
	}
	return replies
}
