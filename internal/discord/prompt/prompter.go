package prompt

import (
	"context"
	"strconv"
	"sync"
	"time"

	"github.com/KirkDiggler/dnd-fizzle-bot/internal/discord/builders"
	"github.com/KirkDiggler/dnd-fizzle-bot/internal/discord/core"
	dnderr "github.com/KirkDiggler/dnd-fizzle-bot/internal/errors"
	"github.com/KirkDiggler/dnd-fizzle-bot/internal/logger"
	"github.com/KirkDiggler/dnd-fizzle-bot/internal/services/spellcheck"
	"github.com/bwmarrin/discordgo"
)

// Domain is the custom ID domain for prompt buttons
const Domain = "fizzle"

const (
	actionChoose  = "choose"
	actionConfirm = "confirm"
	answerYes     = "yes"
	answerNo      = "no"
)

type answer struct {
	index     int
	confirmed bool
}

type waiter struct {
	userID  string
	action  string
	choices []*spellcheck.Choice
	answers chan answer
}

// Prompter asks questions with message buttons and waits for the click.
// One question per attempt can be open at a time. A question left
// unanswered for the answer timeout counts as dismissed.
type Prompter struct {
	session       core.Session
	ids           *core.CustomIDBuilder
	matcher       *core.CustomIDMatcher
	answerTimeout time.Duration

	mu      sync.Mutex
	waiters map[string]*waiter
}

var _ spellcheck.Prompter = (*Prompter)(nil)

// NewPrompter creates a button prompter. A zero answerTimeout waits until the context ends.
func NewPrompter(session core.Session, answerTimeout time.Duration) *Prompter {
	if session == nil {
		panic("session is required")
	}
	return &Prompter{
		session:       session,
		ids:           core.NewCustomIDBuilder(Domain),
		matcher:       core.NewCustomIDMatcher(Domain, "*"),
		answerTimeout: answerTimeout,
		waiters:       make(map[string]*waiter),
	}
}

// Choose posts one button per choice and blocks until one is clicked
func (p *Prompter) Choose(ctx context.Context, req *spellcheck.ChoiceRequest) (*spellcheck.Choice, error) {
	if req == nil {
		return nil, dnderr.InvalidArgument("choice request cannot be nil")
	}
	if len(req.Choices) == 0 {
		return nil, dnderr.InvalidArgument("choice request has no choices")
	}

	components := builders.NewComponentBuilder(p.ids)
	for i, choice := range req.Choices {
		style := discordgo.PrimaryButton
		if i == len(req.Choices)-1 {
			style = discordgo.SecondaryButton
		}
		components.Button(choice.Label, style, actionChoose, req.AttemptID, strconv.Itoa(i))
	}

	w := &waiter{
		userID:  req.UserID,
		action:  actionChoose,
		choices: req.Choices,
		answers: make(chan answer, 1),
	}
	got, answered, err := p.ask(ctx, req.AttemptID, req.ChannelID, req.UserID, req.Title, req.Description, components.Build(), w)
	if err != nil || !answered {
		return nil, err
	}
	return req.Choices[got.index], nil
}

// Confirm posts yes/no buttons and blocks until one is clicked
func (p *Prompter) Confirm(ctx context.Context, req *spellcheck.ConfirmRequest) (bool, error) {
	if req == nil {
		return false, dnderr.InvalidArgument("confirm request cannot be nil")
	}

	components := builders.NewComponentBuilder(p.ids).
		DangerButton("Yes", actionConfirm, req.AttemptID, answerYes).
		SecondaryButton("No", actionConfirm, req.AttemptID, answerNo).
		Build()

	w := &waiter{
		userID:  req.UserID,
		action:  actionConfirm,
		answers: make(chan answer, 1),
	}
	got, answered, err := p.ask(ctx, req.AttemptID, req.ChannelID, req.UserID, req.Title, req.Description, components, w)
	if err != nil || !answered {
		return false, err
	}
	return got.confirmed, nil
}

func (p *Prompter) ask(ctx context.Context, attemptID, channelID, userID, title, description string,
	components []discordgo.MessageComponent, w *waiter) (answer, bool, error) {
	if attemptID == "" {
		return answer{}, false, dnderr.InvalidArgument("attempt ID is required")
	}
	if channelID == "" {
		return answer{}, false, dnderr.InvalidArgument("channel ID is required to prompt")
	}

	if err := p.register(attemptID, w); err != nil {
		return answer{}, false, err
	}
	defer p.unregister(attemptID, w)

	msg := &discordgo.MessageSend{
		Embeds:     []*discordgo.MessageEmbed{builders.InfoEmbed(title, description).Footer(attemptID).Build()},
		Components: components,
	}
	if userID != "" {
		msg.Content = "<@" + userID + ">"
	}
	if _, err := p.session.ChannelMessageSendComplex(channelID, msg); err != nil {
		return answer{}, false, dnderr.Wrap(err, "failed to send prompt")
	}

	log := logger.FromContext(ctx)
	log.Debug("waiting for prompt answer", "action", w.action, "channel_id", channelID)

	var expired <-chan time.Time
	if p.answerTimeout > 0 {
		timer := time.NewTimer(p.answerTimeout)
		defer timer.Stop()
		expired = timer.C
	}

	select {
	case got := <-w.answers:
		return got, true, nil
	case <-expired:
		log.Info("prompt expired unanswered", "action", w.action, "timeout", p.answerTimeout)
		return answer{}, false, nil
	case <-ctx.Done():
		return answer{}, false, ctx.Err()
	}
}

func (p *Prompter) register(attemptID string, w *waiter) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if _, exists := p.waiters[attemptID]; exists {
		return dnderr.AlreadyExistsf("attempt '%s' already has an open prompt", attemptID)
	}
	p.waiters[attemptID] = w
	return nil
}

func (p *Prompter) unregister(attemptID string, w *waiter) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.waiters[attemptID] == w {
		delete(p.waiters, attemptID)
	}
}

// Pending returns the number of open prompts
func (p *Prompter) Pending() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.waiters)
}

// Owns reports whether a component custom ID belongs to this prompter
func (p *Prompter) Owns(customID string) bool {
	return p.matcher.Matches(customID)
}

// HandleComponent answers an open prompt from a button click.
// Clicks from other users, unknown prompts and stale buttons get an ephemeral reply.
func (p *Prompter) HandleComponent(s core.Session, i *discordgo.InteractionCreate) error {
	if i == nil || i.Interaction == nil || i.Type != discordgo.InteractionMessageComponent {
		return dnderr.InvalidArgument("not a component interaction")
	}

	responder := core.NewResponder(s, i.Interaction)

	id, ok := p.matcher.Extract(i.MessageComponentData().CustomID)
	if !ok {
		return dnderr.InvalidArgumentf("unrecognized prompt button '%s'", i.MessageComponentData().CustomID)
	}

	p.mu.Lock()
	w, exists := p.waiters[id.Target]
	if !exists || w.action != id.Action {
		p.mu.Unlock()
		return responder.Respond(core.NewEphemeralResponse("This prompt is no longer active."))
	}
	if w.userID != "" && w.userID != core.InteractionUserID(i.Interaction) {
		p.mu.Unlock()
		return responder.Respond(core.NewEphemeralResponse("Only the caster's player can answer this."))
	}

	got, label, err := parseAnswer(w, id)
	if err != nil {
		p.mu.Unlock()
		return err
	}
	delete(p.waiters, id.Target)
	p.mu.Unlock()

	w.answers <- got

	return responder.Update(&core.Response{
		Embeds: []*discordgo.MessageEmbed{
			builders.NewEmbed().
				Title(promptTitle(i.Message)).
				Description("Answered: **" + label + "**").
				Color(builders.ColorPrimary).
				Build(),
		},
		Components: []discordgo.MessageComponent{},
	})
}

func parseAnswer(w *waiter, id *core.CustomID) (answer, string, error) {
	switch w.action {
	case actionChoose:
		index, err := strconv.Atoi(id.Arg(0))
		if err != nil || index < 0 || index >= len(w.choices) {
			return answer{}, "", dnderr.InvalidArgumentf("invalid choice index '%s'", id.Arg(0))
		}
		return answer{index: index}, w.choices[index].Label, nil
	case actionConfirm:
		switch id.Arg(0) {
		case answerYes:
			return answer{confirmed: true}, "Yes", nil
		case answerNo:
			return answer{}, "No", nil
		}
		return answer{}, "", dnderr.InvalidArgumentf("invalid confirm answer '%s'", id.Arg(0))
	}
	return answer{}, "", dnderr.InvalidArgumentf("unknown prompt action '%s'", w.action)
}

func promptTitle(msg *discordgo.Message) string {
	if msg != nil && len(msg.Embeds) > 0 && msg.Embeds[0] != nil {
		return msg.Embeds[0].Title
	}
	return "Prompt"
}
