package idgen_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/KirkDiggler/rpg-quest/internal/pkg/idgen"
)

type IDGenTestSuite struct {
	suite.Suite
}

func TestIDGenSuite(t *testing.T) {
	suite.Run(t, new(IDGenTestSuite))
}

func (s *IDGenTestSuite) TestSequential() {
	gen := idgen.NewSequential("enemy")
	s.Assert().Equal("enemy_1", gen.Generate())
	s.Assert().Equal("enemy_2", gen.Generate())

	bare := idgen.NewSequential("")
	s.Assert().Equal("1", bare.Generate())
}

func (s *IDGenTestSuite) TestPrefixedIsUnique() {
	gen := idgen.NewPrefixed("save")
	a, b := gen.Generate(), gen.Generate()
	s.Assert().True(strings.HasPrefix(a, "save_"))
	s.Assert().NotEqual(a, b)
}

func (s *IDGenTestSuite) TestUUID() {
	gen := idgen.NewUUID("combat")
	id := gen.Generate()
	s.Assert().True(strings.HasPrefix(id, "combat_"))
	s.Assert().Len(strings.TrimPrefix(id, "combat_"), 36)
}
