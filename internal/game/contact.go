package game

// Contact is a contact-begin event between two bodies, in no particular order.
type Contact struct {
	A *Body
	B *Body
}

// ResolveContact applies the game rules for one contact. Contacts outside
// Playing are ignored, so once a contact ends the game any later contact in
// the same step has no effect.
func (g *Game) ResolveContact(c Contact) {
	if g.machine.Mode() != ModePlaying || c.A == nil || c.B == nil {
		return
	}
	first, second := c.A, c.B
	if first.Category > second.Category {
		first, second = second, first
	}
	if first.Category != CategoryBall || second.Category == CategoryBall {
		return
	}

	switch second.Category {
	case CategoryBorder:
		g.effects.PlaySound(SoundBlip)
	case CategoryPaddle:
		g.effects.PlaySound(SoundPaddleBlip)
	case CategoryBottom:
		g.finish(OutcomeLost)
	case CategoryBlock:
		if !g.breakBlock(second) {
			return
		}
		if IsWon(g.world) {
			g.finish(OutcomeWon)
		}
	}
}

func (g *Game) breakBlock(b *Body) bool {
	if !g.world.RemoveBlock(b.ID) {
		// Already broken earlier in this step.
		return false
	}
	g.effects.PlaySound(SoundBreak)
	g.effects.SpawnEffect(EffectBrokenPlatform, b.Pos, BreakEffectLifetime)
	g.logger.Debug("block broken", "id", b.ID, "remaining", g.world.BlockCount())
	return true
}

// IsWon reports whether no breakable blocks remain.
func IsWon(w *World) bool {
	return w.BlockCount() == 0
}
