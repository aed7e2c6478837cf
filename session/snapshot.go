package session

import (
	"absorb/game"
	"absorb/protocol"
)

func (s *Session) buildSnapshot() protocol.State {
	st := s.state
	p := st.Player
	snapshot := protocol.State{
		Tick:  st.Tick,
		Phase: st.Phase.String(),
		Player: protocol.PlayerSnapshot{
			Name:      p.Name,
			Color:     p.Color,
			X:         p.X,
			Y:         p.Y,
			R:         p.Radius,
			Size:      game.FormatSize(p.Radius),
			Score:     p.Score,
			Money:     p.Money,
			Energy:    p.Energy,
			MaxEnergy: p.MaxEnergy,
			Boosting:  p.Boosting,
		},
		Camera: protocol.CameraSnapshot{
			X:    st.Camera.X,
			Y:    st.Camera.Y,
			Zoom: st.Camera.Zoom,
			W:    st.Camera.ViewW,
			H:    st.Camera.ViewH,
		},
		Chunks: make([]protocol.ChunkSnapshot, 0, len(st.Visible)),
	}
	for _, k := range st.Visible {
		ch, ok := st.Chunks[k]
		if !ok {
			continue
		}
		cs := protocol.ChunkSnapshot{
			X:    k.X,
			Y:    k.Y,
			Food: make([]protocol.FoodSnapshot, 0, len(ch.Food)),
			Bots: make([]protocol.BotSnapshot, 0, len(ch.Bots)),
		}
		for _, f := range ch.Food {
			cs.Food = append(cs.Food, protocol.FoodSnapshot{X: f.X, Y: f.Y, R: f.R, Color: f.Color.CSS()})
		}
		for _, b := range ch.Bots {
			cs.Bots = append(cs.Bots, protocol.BotSnapshot{
				ID:    b.ID,
				Name:  b.Name,
				X:     b.X,
				Y:     b.Y,
				R:     b.R,
				Color: b.Color.CSS(),
				State: b.Behavior.State.String(),
			})
		}
		snapshot.Chunks = append(snapshot.Chunks, cs)
	}
	for _, e := range s.pending {
		snapshot.Events = append(snapshot.Events, protocol.EventSnapshot{
			Kind:  e.Kind.String(),
			X:     e.X,
			Y:     e.Y,
			R:     e.R,
			BotID: e.BotID,
		})
	}
	return snapshot
}

func buildShop(p *game.Player) protocol.Shop {
	shop := protocol.Shop{Money: p.Money}
	for _, o := range game.Offers(p) {
		shop.Items = append(shop.Items, protocol.ShopItem{
			Upgrade: string(o.Kind),
			Name:    o.Name,
			Level:   o.Level,
			Cap:     o.Cap,
			Cost:    o.Cost,
			Maxed:   o.Maxed,
		})
	}
	return shop
}
