package messages

import (
	"go.mau.fi/whatsmeow/proto/waE2E"
	"go.mau.fi/whatsmeow/types"
	"go.mau.fi/whatsmeow/types/events"
)

func GetMentionedJIDS(message *waE2E.Message) []string {
	if message == nil {
		return nil
	}

	if m := message.DocumentWithCaptionMessage.GetMessage(); m != nil {
		return GetMentionedJIDS(m)
	}
	if m := message.GroupStatusMentionMessage.GetMessage(); m != nil {
		return GetMentionedJIDS(m)
	}
	if m := message.GroupStatusMessage.GetMessage(); m != nil {
		return GetMentionedJIDS(m)
	}
	if m := message.GroupMentionedMessage.GetMessage(); m != nil {
		return GetMentionedJIDS(m)
	}
	if m := message.RequestPaymentMessage.GetNoteMessage(); m != nil {
		return GetMentionedJIDS(m)
	}
	if m := message.ViewOnceMessage.GetMessage(); m != nil {
		return GetMentionedJIDS(m)
	}
	if m := message.ViewOnceMessageV2.GetMessage(); m != nil {
		return GetMentionedJIDS(m)
	}

	contexts := []func() *waE2E.ContextInfo{
		message.AudioMessage.GetContextInfo,
		message.ButtonsResponseMessage.GetContextInfo,
		message.ContactMessage.GetContextInfo,
		message.ContactsArrayMessage.GetContextInfo,
		message.DocumentMessage.GetContextInfo,
		message.ExtendedTextMessage.GetContextInfo,
		message.ImageMessage.GetContextInfo,
		message.LiveLocationMessage.GetContextInfo,
		message.LocationMessage.GetContextInfo,
		message.OrderMessage.GetContextInfo,
		message.ProductMessage.GetContextInfo,
		message.PtvMessage.GetContextInfo,
		message.RequestPhoneNumberMessage.GetContextInfo,
		message.VideoMessage.GetContextInfo,
	}

	for _, getContext := range contexts {
		if m := getContext(); m != nil {
			if m.MentionedJID != nil {
				return m.MentionedJID
			}
			return []string{}
		}
	}

	return []string{}
}

func GetMessageText(message *waE2E.Message) (text string, isValid bool) {
	if message == nil {
		return "", false
	}

	recursives := []func() *waE2E.Message{
		message.GroupMentionedMessage.GetMessage,
		message.GroupStatusMentionMessage.GetMessage,
		message.GroupStatusMessage.GetMessage,
		message.RequestPaymentMessage.GetNoteMessage,
		message.ViewOnceMessage.GetMessage,
		message.ViewOnceMessageV2.GetMessage,
		message.ViewOnceMessageV2Extension.GetMessage,
	}

	for _, getMsg := range recursives {
		if m := getMsg(); m != nil {
			text, _ := GetMessageText(m)
			if message.ViewOnceMessage != nil || message.ViewOnceMessageV2 != nil {
				return text, true
			}
			return text, false
		}
	}

	switch {

	case message.Conversation != nil:
		return message.GetConversation(), true
	case message.ExtendedTextMessage != nil:
		return message.ExtendedTextMessage.GetText(), true
	case message.ImageMessage != nil:
		return message.ImageMessage.GetCaption(), true
	case message.VideoMessage != nil:
		return message.VideoMessage.GetCaption(), true
	case message.PtvMessage != nil:
		return message.PtvMessage.GetCaption(), true
	case message.DocumentMessage != nil:
		return message.DocumentMessage.GetCaption(), true

	case message.LiveLocationMessage != nil:
		return message.LiveLocationMessage.GetCaption(), false
	case message.OrderMessage != nil:
		return message.OrderMessage.GetMessage(), false
	case message.ProductMessage != nil:
		return message.ProductMessage.GetBody(), false
	}

	return "", false
}


// GetQuotedJid extracts the participant a message refers to: the quoted
// author when replying, else the first mention.
func GetQuotedJid(m *events.Message) (jid types.JID, err error) {
	ext := m.Message.GetExtendedTextMessage()
	if ext == nil {
		return
	}
	info := ext.GetContextInfo()
	switch {
	case info.GetParticipant() != "":
		return types.ParseJID(info.GetParticipant())
	case len(info.GetMentionedJID()) > 0:
		return types.ParseJID(info.GetMentionedJID()[0])
	}
	return
}

func quotedMessage(m *events.Message) *waE2E.Message {
	if m.Message.GetExtendedTextMessage() == nil {
		return nil
	}
	return m.Message.GetExtendedTextMessage().GetContextInfo().GetQuotedMessage()
}

// GetImageMessage returns the message carrying an image: the inbound one or
// the one it quotes.
func GetImageMessage(m *events.Message) *waE2E.Message {
	if m.Message.ImageMessage != nil {
		return m.Message
	}
	if q := quotedMessage(m); q.GetImageMessage() != nil {
		return q
	}
	return nil
}

// GetVideoMessage is GetImageMessage for videos.
func GetVideoMessage(m *events.Message) *waE2E.Message {
	if m.Message.VideoMessage != nil {
		return m.Message
	}
	if q := quotedMessage(m); q.GetVideoMessage() != nil {
		return q
	}
	return nil
}

// GetStickerMessage is GetImageMessage for stickers.
func GetStickerMessage(m *events.Message) *waE2E.Message {
	if m.Message.StickerMessage != nil {
		return m.Message
	}
	if q := quotedMessage(m); q.GetStickerMessage() != nil {
		return q
	}
	return nil
}
