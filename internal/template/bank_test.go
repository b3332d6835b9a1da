package template

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gloam/internal/being"
	"gloam/internal/config"
	"gloam/internal/world"
)

func testBank(seed int64) *Bank {
	return NewBank(rand.New(rand.NewSource(seed)), config.DefaultBalance())
}

func TestListEligible_PrisonerGate(t *testing.T) {
	b := testBank(1)

	withPrisoner := b.ListEligible(world.State{HasPrisoner: true})
	without := b.ListEligible(world.State{HasPrisoner: false})

	assert.Len(t, withPrisoner, len(b.Templates()))
	assert.Len(t, without, len(b.Templates())-1)
	for _, tpl := range without {
		assert.False(t, tpl.RequiresPrisoner)
	}
}

func TestInstantiate_StampsTemplateID(t *testing.T) {
	b := testBank(2)
	for _, tpl := range b.Templates() {
		content := b.Instantiate(tpl)
		assert.Equal(t, tpl.ID, content.TemplateID)
		assert.NotEmpty(t, content.Title)
		assert.NotEmpty(t, content.Description)
		assert.GreaterOrEqual(t, content.XP, 0)
	}
}

func TestPickDaily_AlwaysReturnsContent(t *testing.T) {
	b := testBank(3)
	for i := 0; i < 50; i++ {
		content := b.PickDaily(world.State{HasPrisoner: i%2 == 0})
		require.NotEmpty(t, content.TemplateID)
		require.NotEmpty(t, content.Title)
	}
}

func TestPickDaily_EmptyEligibleFallsBack(t *testing.T) {
	b := testBank(4)
	// Force an empty eligible set.
	b.templates = []Template{{ID: TplPrisonerRite, RequiresPrisoner: true, Generate: genPrisonerRite}}

	content := b.PickDaily(world.State{HasPrisoner: false})
	assert.Equal(t, TplQuietDay, content.TemplateID)
	assert.Zero(t, content.XP)
	assert.Empty(t, content.Steps)
}

func TestLureTemplate_ExcludesProtectedTargets(t *testing.T) {
	b := testBank(5)
	tpl, ok := b.Template(TplLureToRitual)
	require.True(t, ok)

	for i := 0; i < 200; i++ {
		content := b.Instantiate(tpl)
		target := content.Params.TargetType
		assert.NotEqual(t, being.CatLawOfficer, target)
		assert.NotEqual(t, being.CatCaptive, target)
	}
}

func TestKillSameRoof_CounterFromBalance(t *testing.T) {
	balance := config.DefaultBalance()
	balance.SameRoofKills = 4
	b := NewBank(rand.New(rand.NewSource(6)), balance)

	tpl, ok := b.Template(TplKillSameRoof)
	require.True(t, ok)
	content := b.Instantiate(tpl)
	require.NotNil(t, content.Counter)
	assert.Equal(t, 4, content.Counter.Required)
	assert.Zero(t, content.Counter.Count)
}

func TestMultiStepTemplates_HaveOrderedUniqueSteps(t *testing.T) {
	b := testBank(7)
	for _, id := range []string{TplKillActionCorpseTheirHome, TplDetachCookGift, TplLureToRitual} {
		tpl, ok := b.Template(id)
		require.True(t, ok, id)
		content := b.Instantiate(tpl)
		require.NotEmpty(t, content.Steps, id)
		seen := map[string]bool{}
		for _, s := range content.Steps {
			assert.False(t, s.Complete)
			assert.False(t, seen[s.ID], "duplicate step id %s in %s", s.ID, id)
			seen[s.ID] = true
		}
	}
}

func TestGeneration_IsDeterministicUnderSeed(t *testing.T) {
	a := testBank(42).PickDaily(world.State{})
	b := testBank(42).PickDaily(world.State{})
	assert.Equal(t, a, b)
}
