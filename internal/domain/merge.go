package domain

import "slices"

// MergeSnapshot reconciles the local session with an authoritative snapshot.
// The snapshot wins on every replicated field except that the local role and
// viewer identity are kept, players only known locally survive, and every
// seated player ends up with a score and a hand.
func MergeSnapshot(local, snap *Session) *Session {
	if snap == nil {
		return local.Clone()
	}
	if local == nil {
		local = NewSession(snap.Config)
	}

	out := snap.Clone()
	out.Local = local.Local
	if local.Local.CurrentPlayer != nil {
		p := *local.Local.CurrentPlayer
		out.Local.CurrentPlayer = &p
	}

	players := slices.Clone(out.Players)
	for _, p := range local.Players {
		if !out.HasPlayer(p.ID) {
			players = append(players, p)
		}
	}
	out.Players = players

	scores := make(map[string]int, len(players))
	hands := make(map[string][]string, len(players))
	for _, p := range players {
		if v, ok := snap.Scoreboard[p.ID]; ok {
			scores[p.ID] = v
		} else {
			scores[p.ID] = local.Scoreboard[p.ID]
		}

		switch {
		case snap.Hands[p.ID] != nil:
			hands[p.ID] = slices.Clone(snap.Hands[p.ID])
		case local.Hands[p.ID] != nil:
			hands[p.ID] = slices.Clone(local.Hands[p.ID])
		default:
			hands[p.ID] = []string{}
		}
	}
	out.Scoreboard = scores
	out.Hands = hands
	return out
}
