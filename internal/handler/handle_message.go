package handler

import (
	"context"
	"fmt"
	"strings"
	"time"

	"lynxbot/internal/command"
	"lynxbot/internal/database"
	tmsg "lynxbot/internal/tools/messages"
	"lynxbot/internal/util"

	"go.mau.fi/whatsmeow"
	"go.mau.fi/whatsmeow/types"
	"go.mau.fi/whatsmeow/types/events"
)

const maxWarns = 3

func (i *EventHandler) handleMessage(m *events.Message) {
	if m.Info.IsFromMe || (m.Info.Chat.Server != types.DefaultUserServer && m.Info.Chat.Server != types.GroupServer && m.Info.Chat.Server != types.LegacyUserServer) {
		return
	}
	messageBody, isValid := tmsg.GetMessageText(m.Message)
	isCommand := strings.HasPrefix(messageBody, i.Config.CommandPrefix)
	isOwner := i.Config.IsOwner(m.Info.Sender.User)
	isSudo := i.Config.IsSudo(m.Info.Sender.User)

	var isGroupAdmin bool
	var isBotGroupAdmin bool
	var groupMetadata *types.GroupInfo
	var userInfo *database.User
	var groupInfo *database.Group

	// Metadata is resolved before taking the database mutex so the cache
	// mutex and MU are always acquired in the same order as the group event
	// handler does.
	if m.Info.IsGroup {
		var err error
		groupMetadata, err = i.groupInfo(m.Info.Chat)
		if err != nil {
			i.Log.Error().Err(err).Str("GroupID", m.Info.Chat.String()).Msg("Error getting group metadata")
			return
		}
		isGroupAdmin, isBotGroupAdmin = adminFlags(groupMetadata, i.Client.Store.ID.User, m.Info.Sender.User)
	}

	err := func() error {
		i.UserDB.MU.Lock()
		defer i.UserDB.MU.Unlock()

		var err error
		userInfo, err = i.UserDB.GetUserInfo(m.Info.Sender.User)
		if err != nil {
			i.Log.Error().Err(err).Str("User", m.Info.Sender.User).Msg("Error retrieving user from database")
			return err
		}
		if userInfo.Name != m.Info.PushName {
			userInfo.Name = m.Info.PushName
		}
		if isCommand {
			userInfo.CommandCount++
		}
		if err = i.UserDB.SaveUserInfo(userInfo); err != nil {
			i.Log.Error().Err(err).Str("User", m.Info.Sender.User).Msg("Error saving user info")
			return err
		}

		if !i.receivedOldEvents.Load() {
			return fmt.Errorf("old message")
		}

		if !m.Info.IsGroup {
			return nil
		}

		groupInfo, err = i.UserDB.GetGroupInfo(m.Info.Chat.User)
		if err != nil {
			i.Log.Error().Err(err).Str("Group", m.Info.Chat.String()).Msg("Error getting group from database")
			return err
		}

		participant, err := i.UserDB.GetParticipant(m.Info.Sender.User, m.Info.Chat.User)
		if err != nil {
			i.Log.Error().Err(err).Str("Group", m.Info.Chat.String()).Str("User", m.Info.Sender.User).Msg("Error getting group participant from database")
			return err
		}

		if isBotGroupAdmin && !isOwner && !isGroupAdmin {
			switch {
			case
				(participant.IsBlacklisted || participant.WarnCount >= maxWarns),
				groupInfo.IsAntiLink && util.MatchURL(messageBody),
				groupInfo.IsAntiWALink && util.MatchWaUrl(messageBody),
				len(tmsg.GetMentionedJIDS(m.Message)) >= len(groupMetadata.Participants)-1:
				if groupInfo.RemoveUser {
					if _, err = i.Client.UpdateGroupParticipants(m.Info.Chat, []types.JID{m.Info.Sender}, whatsmeow.ParticipantChangeRemove); err != nil {
						i.Log.Error().Err(err).Str("Group", m.Info.Chat.String()).Str("User", m.Info.Sender.User).Msg("Error removing group participant")
						return err
					}
				}
				i.Client.SendMessage(context.Background(), m.Info.Chat, i.Client.BuildRevoke(m.Info.Chat, m.Info.Sender, m.Info.ID))
				return fmt.Errorf("message removed by moderation")
			}
		}

		if !isValid {
			return fmt.Errorf("unusable message type")
		}

		if isCommand {
			participant.CommandCount++
		} else {
			participant.MessageCount++
		}
		if err = i.UserDB.SaveParticipant(participant); err != nil {
			i.Log.Error().Err(err).Str("Group", m.Info.Chat.String()).Str("User", m.Info.Sender.User).Msg("Error updating group participant info")
			return err
		}
		return nil
	}()
	if err != nil {
		return
	}

	if userInfo.IsBanned || (m.Info.IsGroup && !isGroupAdmin && groupInfo.IsBotDisabled) {
		return
	}

	if i.Config.ReadMessages {
		i.Client.MarkRead([]types.MessageID{m.Info.ID}, time.Now(), m.Info.Chat, m.Info.Sender)
	}

	if !isCommand {
		return
	}

	var langs []string
	if userInfo.Language != "" {
		langs = append(langs, userInfo.Language)
	}
	if m.Info.IsGroup && groupInfo.Language != "" {
		langs = append(langs, groupInfo.Language)
	}
	if i.Config.Language != "" {
		langs = append(langs, i.Config.Language)
	}

	cctx := &command.Context{
		Client:    i.Client,
		Config:    i.Config,
		DB:        i.UserDB,
		Msg:       m,
		Log:       i.Log,
		Localizer: GetLocalizer(langs...),

		Sender:       m.Info.Sender,
		Chat:         m.Info.Chat,
		PushName:     m.Info.PushName,
		IsGroup:      m.Info.IsGroup,
		IsGroupAdmin: isGroupAdmin,
		IsOwner:      isOwner,
		IsSudo:       isSudo,
		Body:         messageBody,

		Mentions:     parseMentions(tmsg.GetMentionedJIDS(m.Message)),
		QuotedSender: quotedSender(m),
	}

	res := i.dispatcher.Dispatch(context.Background(), cctx)
	if res.Status == command.StatusIgnored {
		return
	}

	groupID := ""
	if m.Info.IsGroup {
		groupID = m.Info.Chat.User
	}
	if err := i.UserDB.LogCommand(&database.CommandLog{
		UserID:  m.Info.Sender.User,
		GroupID: groupID,
		Command: res.Command,
		Status:  res.Status.String(),
	}); err != nil {
		// Usage logging is best effort; the dispatch already happened.
		i.Log.Warn().Err(err).Str("Command", res.Command).Msg("Error writing command log")
	}
}

func parseMentions(raw []string) []types.JID {
	var out []types.JID
	for _, r := range raw {
		jid, err := types.ParseJID(r)
		if err != nil {
			continue
		}
		out = append(out, jid)
	}
	return out
}

func quotedSender(m *events.Message) types.JID {
	jid, err := tmsg.GetQuotedJid(m)
	if err != nil {
		return types.EmptyJID
	}
	return jid
}
