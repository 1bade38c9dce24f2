package builders

import (
	"github.com/KirkDiggler/dnd-fizzle-bot/internal/discord/core"
	"github.com/bwmarrin/discordgo"
)

// MaxButtonsPerRow is Discord's action row limit
const MaxButtonsPerRow = 5

// ComponentBuilder builds Discord message components
type ComponentBuilder struct {
	rows            []discordgo.MessageComponent
	currentRow      []discordgo.MessageComponent
	customIDBuilder *core.CustomIDBuilder
}

// NewComponentBuilder creates a new component builder
func NewComponentBuilder(customIDBuilder *core.CustomIDBuilder) *ComponentBuilder {
	return &ComponentBuilder{
		rows:            make([]discordgo.MessageComponent, 0),
		currentRow:      make([]discordgo.MessageComponent, 0, MaxButtonsPerRow),
		customIDBuilder: customIDBuilder,
	}
}

// Button adds a button whose custom ID is domain:action:target:args
func (b *ComponentBuilder) Button(label string, style discordgo.ButtonStyle, action, target string, args ...string) *ComponentBuilder {
	b.addComponent(discordgo.Button{
		Label:    label,
		Style:    style,
		CustomID: b.customIDBuilder.Button(action, target, args...),
	})
	return b
}

func (b *ComponentBuilder) PrimaryButton(label, action, target string, args ...string) *ComponentBuilder {
	return b.Button(label, discordgo.PrimaryButton, action, target, args...)
}

func (b *ComponentBuilder) SecondaryButton(label, action, target string, args ...string) *ComponentBuilder {
	return b.Button(label, discordgo.SecondaryButton, action, target, args...)
}

func (b *ComponentBuilder) SuccessButton(label, action, target string, args ...string) *ComponentBuilder {
	return b.Button(label, discordgo.SuccessButton, action, target, args...)
}

func (b *ComponentBuilder) DangerButton(label, action, target string, args ...string) *ComponentBuilder {
	return b.Button(label, discordgo.DangerButton, action, target, args...)
}

// NewRow starts a new action row
func (b *ComponentBuilder) NewRow() *ComponentBuilder {
	if len(b.currentRow) > 0 {
		b.rows = append(b.rows, discordgo.ActionsRow{
			Components: b.currentRow,
		})
		b.currentRow = make([]discordgo.MessageComponent, 0, MaxButtonsPerRow)
	}
	return b
}

// Build returns the built components
func (b *ComponentBuilder) Build() []discordgo.MessageComponent {
	b.NewRow()
	return b.rows
}

func (b *ComponentBuilder) addComponent(component discordgo.MessageComponent) {
	if len(b.currentRow) >= MaxButtonsPerRow {
		b.NewRow()
	}
	b.currentRow = append(b.currentRow, component)
}
