package services_test

import (
	"testing"

	"github.com/rxtech-lab/blink-launchpad/internal/models"
	"github.com/rxtech-lab/blink-launchpad/internal/services"
	"github.com/stretchr/testify/suite"
)

type VariantSwitcherTestSuite struct {
	suite.Suite
	store    services.VariantStore
	switcher *services.VariantSwitcher
}

func (s *VariantSwitcherTestSuite) SetupTest() {
	s.store = services.NewVariantStore(models.DefaultActionConfig())
	s.switcher = services.NewVariantSwitcher(s.store)
}

func (s *VariantSwitcherTestSuite) TestInitialBinding() {
	binding := s.switcher.Binding()
	s.Equal(uint64(0), binding.Incarnation)
	s.Equal(models.ActionTypeTipping, binding.Variant)

	values, ok := binding.Values.(*models.TippingConfig)
	s.Require().True(ok)
	s.Equal(models.DefaultActionConfig().Tipping, *values)
}

func (s *VariantSwitcherTestSuite) TestSwitchIncrementsIncarnation() {
	binding, err := s.switcher.Switch(models.ActionTypeStaking)
	s.Require().NoError(err)
	s.Equal(uint64(1), binding.Incarnation)
	s.Equal(models.ActionTypeStaking, binding.Variant)

	binding, err = s.switcher.Switch(models.ActionTypeTipping)
	s.Require().NoError(err)
	s.Equal(uint64(2), binding.Incarnation)
	s.Equal(uint64(2), s.switcher.Incarnation())
}

func (s *VariantSwitcherTestSuite) TestSwitchToSameTagStillIncrements() {
	binding, err := s.switcher.Switch(models.ActionTypeTipping)
	s.Require().NoError(err)
	s.Equal(uint64(1), binding.Incarnation)
	s.Equal(models.ActionTypeTipping, s.store.Get().Type)
}

func (s *VariantSwitcherTestSuite) TestInvalidSwitchKeepsIncarnation() {
	_, err := s.switcher.Switch(models.ActionTypeCustom)
	s.Require().NoError(err)

	binding, err := s.switcher.Switch("lottery")
	s.ErrorIs(err, services.ErrInvalidVariant)
	s.Equal(uint64(1), binding.Incarnation)
	s.Equal(models.ActionTypeCustom, binding.Variant)
	s.Equal(models.ActionTypeCustom, s.store.Get().Type)
}

func (s *VariantSwitcherTestSuite) TestBindingSeededFromPreservedPayload() {
	_, err := s.store.PatchVariant(models.ActionTypeTokenSwap, models.Patch{
		"fromToken": "SOL",
		"toToken":   "USDC",
		"amount":    "3",
	})
	s.Require().NoError(err)

	_, err = s.switcher.Switch(models.ActionTypeTokenSwap)
	s.Require().NoError(err)
	_, err = s.switcher.Switch(models.ActionTypeTipping)
	s.Require().NoError(err)
	binding, err := s.switcher.Switch(models.ActionTypeTokenSwap)
	s.Require().NoError(err)

	values, ok := binding.Values.(*models.TokenSwapConfig)
	s.Require().True(ok)
	s.Equal("SOL", values.FromToken)
	s.Equal("USDC", values.ToToken)
	s.Equal("3", values.Amount)
	s.Equal(0.5, values.SlippagePercent)
}

func TestVariantSwitcherTestSuite(t *testing.T) {
	suite.Run(t, new(VariantSwitcherTestSuite))
}
