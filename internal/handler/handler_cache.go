package handler

import (
	"context"
	"time"

	"go.mau.fi/whatsmeow/types"
)

type cacheEntry struct {
	Info     *types.GroupInfo
	expireAt time.Time
}

func (i *EventHandler) GetCachedGroupInfo(jid types.JID) (*types.GroupInfo, bool) {
	i.groupCacheMutex.Lock()
	defer i.groupCacheMutex.Unlock()
	entry, ok := i.groupInfoCache[jid.User]

	if !ok {
		return nil, false
	}

	if time.Now().After(entry.expireAt) {
		delete(i.groupInfoCache, jid.User)
		return nil, false
	}

	if entry.Info == nil {
		return nil, false
	}

	return entry.Info, true
}

func (i *EventHandler) SetCachedGroupInfo(group *types.GroupInfo) {
	if group == nil {
		return
	}
	i.groupCacheMutex.Lock()
	i.groupInfoCache[group.JID.User] = &cacheEntry{
		Info:     group,
		expireAt: time.Now().Add(6 * time.Hour),
	}
	i.groupCacheMutex.Unlock()
}

// groupInfo returns cached metadata for a group, fetching and caching it on
// a miss.
func (i *EventHandler) groupInfo(jid types.JID) (*types.GroupInfo, error) {
	if cached, ok := i.GetCachedGroupInfo(jid); ok {
		return cached, nil
	}
	info, err := i.Client.GetGroupInfo(jid)
	if err != nil {
		return nil, err
	}
	i.SetCachedGroupInfo(info)
	return info, nil
}

// IsBotGroupAdmin implements command.GroupInfoProvider for the gate
// evaluator's bot-admin check.
func (i *EventHandler) IsBotGroupAdmin(ctx context.Context, chat types.JID) (bool, error) {
	info, err := i.groupInfo(chat)
	if err != nil {
		return false, err
	}
	_, botAdmin := adminFlags(info, i.Client.Store.ID.User, "")
	return botAdmin, nil
}

// adminFlags scans a group's participants once, reporting whether sender and
// the bot account hold admin.
func adminFlags(info *types.GroupInfo, botUser string, senderUser string) (senderAdmin bool, botAdmin bool) {
	for _, p := range info.Participants {
		if !p.IsAdmin && !p.IsSuperAdmin {
			continue
		}
		if p.JID.User == senderUser {
			senderAdmin = true
		}
		if p.JID.User == botUser {
			botAdmin = true
		}
	}
	return senderAdmin, botAdmin
}
