package testutil

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/zap8600/go-discordapi/pkg/model"
)

func (m *MockDiscord) channelByID(r *http.Request) (*model.Channel, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	ch, ok := m.channels[model.Snowflake(r.PathValue("id"))]
	return ch, ok
}

func (m *MockDiscord) handleGetChannel(w http.ResponseWriter, r *http.Request) {
	ch, ok := m.channelByID(r)
	if !ok {
		writeError(w, http.StatusNotFound, 10003, "Unknown Channel")
		return
	}
	writeJSON(w, http.StatusOK, ch)
}

func (m *MockDiscord) handleModifyChannel(w http.ResponseWriter, r *http.Request) {
	var body model.ChannelModify
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, 50035, "Invalid Form Body")
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	ch, ok := m.channels[model.Snowflake(r.PathValue("id"))]
	if !ok {
		writeError(w, http.StatusNotFound, 10003, "Unknown Channel")
		return
	}
	if body.Name != nil {
		ch.Name = *body.Name
	}
	if body.Topic != nil {
		ch.Topic = *body.Topic
	}
	writeJSON(w, http.StatusOK, ch)
}

func (m *MockDiscord) handleDeleteChannel(w http.ResponseWriter, r *http.Request) {
	m.mu.Lock()
	defer m.mu.Unlock()
	id := model.Snowflake(r.PathValue("id"))
	ch, ok := m.channels[id]
	if !ok {
		writeError(w, http.StatusNotFound, 10003, "Unknown Channel")
		return
	}
	delete(m.channels, id)
	writeJSON(w, http.StatusOK, ch)
}

func (m *MockDiscord) handleGetMessages(w http.ResponseWriter, r *http.Request) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	msgs := m.messages[model.Snowflake(r.PathValue("id"))]
	if msgs == nil {
		msgs = []*model.Message{}
	}
	limit := len(msgs)
	if q := r.URL.Query().Get("limit"); q != "" {
		if n, err := strconv.Atoi(q); err == nil && n < limit {
			limit = n
		}
	}
	// Newest first, as the API returns them.
	out := make([]*model.Message, 0, limit)
	for i := len(msgs) - 1; i >= 0 && len(out) < limit; i-- {
		out = append(out, msgs[i])
	}
	writeJSON(w, http.StatusOK, out)
}

func (m *MockDiscord) handleCreateMessage(w http.ResponseWriter, r *http.Request) {
	var body model.MessageCreate
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, 50035, "Invalid Form Body")
		return
	}
	if body.Content == "" && len(body.Embeds) == 0 {
		writeError(w, http.StatusBadRequest, 50006, "Cannot send an empty message")
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	channelID := model.Snowflake(r.PathValue("id"))
	if _, ok := m.channels[channelID]; !ok {
		writeError(w, http.StatusNotFound, 10003, "Unknown Channel")
		return
	}
	msg := &model.Message{
		ID:        m.newIDLocked(),
		ChannelID: channelID,
		Author:    m.me,
		Content:   body.Content,
		Nonce:     body.Nonce,
		TTS:       body.TTS,
		Embeds:    body.Embeds,
	}
	m.messages[channelID] = append(m.messages[channelID], msg)
	writeJSON(w, http.StatusOK, msg)
}

func (m *MockDiscord) findMessage(channelID, messageID model.Snowflake) (int, *model.Message) {
	for i, msg := range m.messages[channelID] {
		if msg.ID == messageID {
			return i, msg
		}
	}
	return -1, nil
}

func (m *MockDiscord) handleGetMessage(w http.ResponseWriter, r *http.Request) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	_, msg := m.findMessage(model.Snowflake(r.PathValue("id")), model.Snowflake(r.PathValue("mid")))
	if msg == nil {
		writeError(w, http.StatusNotFound, 10008, "Unknown Message")
		return
	}
	writeJSON(w, http.StatusOK, msg)
}

func (m *MockDiscord) handleEditMessage(w http.ResponseWriter, r *http.Request) {
	var body model.MessageEdit
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, 50035, "Invalid Form Body")
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	_, msg := m.findMessage(model.Snowflake(r.PathValue("id")), model.Snowflake(r.PathValue("mid")))
	if msg == nil {
		writeError(w, http.StatusNotFound, 10008, "Unknown Message")
		return
	}
	if body.Content != nil {
		msg.Content = *body.Content
		msg.EditedTimestamp = "2024-01-01T00:00:00.000000+00:00"
	}
	writeJSON(w, http.StatusOK, msg)
}

func (m *MockDiscord) handleDeleteMessage(w http.ResponseWriter, r *http.Request) {
	m.mu.Lock()
	defer m.mu.Unlock()
	channelID := model.Snowflake(r.PathValue("id"))
	i, msg := m.findMessage(channelID, model.Snowflake(r.PathValue("mid")))
	if msg == nil {
		writeError(w, http.StatusNotFound, 10008, "Unknown Message")
		return
	}
	m.messages[channelID] = append(m.messages[channelID][:i], m.messages[channelID][i+1:]...)
	w.WriteHeader(http.StatusNoContent)
}

func (m *MockDiscord) handleBulkDelete(w http.ResponseWriter, r *http.Request) {
	var body model.BulkDelete
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, 50035, "Invalid Form Body")
		return
	}
	if len(body.Messages) < 2 || len(body.Messages) > 100 {
		writeError(w, http.StatusBadRequest, 50016, "Provided too few or too many messages to delete")
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	channelID := model.Snowflake(r.PathValue("id"))
	drop := make(map[model.Snowflake]bool, len(body.Messages))
	for _, id := range body.Messages {
		drop[id] = true
	}
	kept := m.messages[channelID][:0]
	for _, msg := range m.messages[channelID] {
		if !drop[msg.ID] {
			kept = append(kept, msg)
		}
	}
	m.messages[channelID] = kept
	w.WriteHeader(http.StatusNoContent)
}

func (m *MockDiscord) handleCrosspost(w http.ResponseWriter, r *http.Request) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	_, msg := m.findMessage(model.Snowflake(r.PathValue("id")), model.Snowflake(r.PathValue("mid")))
	if msg == nil {
		writeError(w, http.StatusNotFound, 10008, "Unknown Message")
		return
	}
	writeJSON(w, http.StatusOK, msg)
}

func (m *MockDiscord) handleReaction(w http.ResponseWriter, r *http.Request) {
	m.mu.RLock()
	_, msg := m.findMessage(model.Snowflake(r.PathValue("id")), model.Snowflake(r.PathValue("mid")))
	m.mu.RUnlock()
	if msg == nil {
		writeError(w, http.StatusNotFound, 10008, "Unknown Message")
		return
	}
	if r.PathValue("emoji") == "" {
		writeError(w, http.StatusBadRequest, 10014, "Unknown Emoji")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (m *MockDiscord) handlePermissions(w http.ResponseWriter, r *http.Request) {
	if _, ok := m.channelByID(r); !ok {
		writeError(w, http.StatusNotFound, 10003, "Unknown Channel")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (m *MockDiscord) handleGetInvites(w http.ResponseWriter, r *http.Request) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	invites := m.invites[model.Snowflake(r.PathValue("id"))]
	if invites == nil {
		invites = []*model.Invite{}
	}
	writeJSON(w, http.StatusOK, invites)
}

func (m *MockDiscord) handleCreateInvite(w http.ResponseWriter, r *http.Request) {
	m.mu.Lock()
	defer m.mu.Unlock()
	channelID := model.Snowflake(r.PathValue("id"))
	ch, ok := m.channels[channelID]
	if !ok {
		writeError(w, http.StatusNotFound, 10003, "Unknown Channel")
		return
	}
	invite := &model.Invite{
		Code:    "mock" + string(m.newIDLocked()[12:]),
		Channel: ch,
		Inviter: m.me,
	}
	m.invites[channelID] = append(m.invites[channelID], invite)
	writeJSON(w, http.StatusOK, invite)
}

func (m *MockDiscord) handleCreateGuild(w http.ResponseWriter, r *http.Request) {
	var body model.GuildCreate
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil || body.Name == "" {
		writeError(w, http.StatusBadRequest, 50035, "Invalid Form Body")
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	g := &model.Guild{
		ID:      m.newIDLocked(),
		Name:    body.Name,
		OwnerID: m.me.ID,
	}
	m.guilds[g.ID] = g
	for _, cc := range body.Channels {
		ch := &model.Channel{
			ID:      m.newIDLocked(),
			Type:    cc.Type,
			GuildID: g.ID,
			Name:    cc.Name,
		}
		m.channels[ch.ID] = ch
		g.Channels = append(g.Channels, ch)
	}
	writeJSON(w, http.StatusCreated, g)
}

func (m *MockDiscord) handleGuildChannels(w http.ResponseWriter, r *http.Request) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	guildID := model.Snowflake(r.PathValue("id"))
	if _, ok := m.guilds[guildID]; !ok {
		writeError(w, http.StatusNotFound, 10004, "Unknown Guild")
		return
	}
	out := []*model.Channel{}
	for _, ch := range m.channels {
		if ch.GuildID == guildID {
			out = append(out, ch)
		}
	}
	writeJSON(w, http.StatusOK, out)
}

func (m *MockDiscord) handleCreateGuildChannel(w http.ResponseWriter, r *http.Request) {
	var body model.GuildChannelCreate
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil || body.Name == "" {
		writeError(w, http.StatusBadRequest, 50035, "Invalid Form Body")
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	guildID := model.Snowflake(r.PathValue("id"))
	if _, ok := m.guilds[guildID]; !ok {
		writeError(w, http.StatusNotFound, 10004, "Unknown Guild")
		return
	}
	ch := &model.Channel{
		ID:      m.newIDLocked(),
		Type:    body.Type,
		GuildID: guildID,
		Name:    body.Name,
		Topic:   body.Topic,
	}
	m.channels[ch.ID] = ch
	writeJSON(w, http.StatusCreated, ch)
}

func (m *MockDiscord) handleGuildMembers(w http.ResponseWriter, r *http.Request) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	guildID := model.Snowflake(r.PathValue("id"))
	if _, ok := m.guilds[guildID]; !ok {
		writeError(w, http.StatusNotFound, 10004, "Unknown Guild")
		return
	}
	members := m.members[guildID]
	if members == nil {
		members = []*model.GuildMember{}
	}
	writeJSON(w, http.StatusOK, members)
}

func (m *MockDiscord) handleGuildRoles(w http.ResponseWriter, r *http.Request) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	g, ok := m.guilds[model.Snowflake(r.PathValue("id"))]
	if !ok {
		writeError(w, http.StatusNotFound, 10004, "Unknown Guild")
		return
	}
	roles := g.Roles
	if roles == nil {
		roles = []*model.Role{}
	}
	writeJSON(w, http.StatusOK, roles)
}

func (m *MockDiscord) handleMe(w http.ResponseWriter, r *http.Request) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	writeJSON(w, http.StatusOK, m.me)
}

func (m *MockDiscord) handleMyGuilds(w http.ResponseWriter, r *http.Request) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := []*model.PartialGuild{}
	for _, g := range m.guilds {
		out = append(out, &model.PartialGuild{
			ID:    g.ID,
			Name:  g.Name,
			Owner: g.OwnerID == m.me.ID,
		})
	}
	writeJSON(w, http.StatusOK, out)
}

func (m *MockDiscord) handleGateway(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, model.GatewayInfo{URL: m.GatewayURL()})
}

func (m *MockDiscord) handleGatewayBot(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, model.GatewayBotInfo{
		URL:    m.GatewayURL(),
		Shards: 1,
		SessionStartLimit: model.SessionStartLimit{
			Total:          1000,
			Remaining:      999,
			ResetAfter:     14400000,
			MaxConcurrency: 1,
		},
	})
}
