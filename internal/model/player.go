package model

// Player is a character controlled by a connected account.
type Player struct {
	*Character

	accountID int64
}

// NewPlayer creates a player bound to an account.
func NewPlayer(objectID uint32, accountID int64, name string, level, maxHP int32, attack, defense, speed float64, maxEffects int) *Player {
	return &Player{
		Character: NewCharacter(objectID, name, level, maxHP, attack, defense, speed, maxEffects),
		accountID: accountID,
	}
}

// AccountID returns the owning account identifier.
func (p *Player) AccountID() int64 { return p.accountID }
