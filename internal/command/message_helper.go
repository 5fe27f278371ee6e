package command

import (
	"net/http"

	"lynxbot/internal/tools/media"

	"go.mau.fi/whatsmeow"
	waProto "go.mau.fi/whatsmeow/proto/waE2E"
	"go.mau.fi/whatsmeow/types"
	"go.mau.fi/whatsmeow/types/events"
	"google.golang.org/protobuf/proto"
)

// MessageOptions carries the optional extras of an outbound message.
type MessageOptions struct {
	QuotedMessage *events.Message
	Caption       *string
	FileName      *string
	MentionedJid  []string

	Seconds  *uint32
	Mimetype *string
}

func contextInfo(opts *MessageOptions) *waProto.ContextInfo {
	info := &waProto.ContextInfo{}
	if opts == nil {
		return info
	}
	info.MentionedJID = opts.MentionedJid
	if q := opts.QuotedMessage; q != nil {
		info.StanzaID = &q.Info.ID
		info.Participant = proto.String(q.Info.Sender.String())
		info.QuotedMessage = q.Message
	}
	return info
}

func (c *Context) send(to types.JID, message *waProto.Message, what string) {
	_, err := c.Client.SendMessage(c.Context(), to, message)
	if err != nil {
		c.Log.Error().Err(err).Str("To", to.String()).Msgf("Error sending %s message", what)
	}
}

// Reply sends text to the originating chat, quoting the inbound message.
func (c *Context) Reply(text string) {
	c.SendTextMessage(c.Chat, text, &MessageOptions{QuotedMessage: c.Msg})
}

func (c *Context) SendTextMessage(to types.JID, text string, opts *MessageOptions) {
	c.send(to, &waProto.Message{
		ExtendedTextMessage: &waProto.ExtendedTextMessage{
			Text:        &text,
			ContextInfo: contextInfo(opts),
		},
	}, "text")
}

// DeleteMessage revokes a message in a chat. Requires group admin when the
// message belongs to someone else.
func (c *Context) DeleteMessage(chat types.JID, sender types.JID, id types.MessageID) {
	_, err := c.Client.SendMessage(c.Context(), chat, c.Client.BuildRevoke(chat, sender, id))
	if err != nil {
		c.Log.Error().Err(err).Str("ChatID", chat.String()).Str("MessageID", id).Msg("Failed to delete message")
	}
}

// ReactMessage reacts to a message with an emoji.
func (c *Context) ReactMessage(message *events.Message, emoji string) {
	var err error
	if message.Info.Chat.Server == types.NewsletterServer {
		err = c.Client.NewsletterSendReaction(message.Info.Chat, message.Info.ServerID, emoji, c.Client.GenerateMessageID())
	} else {
		_, err = c.Client.SendMessage(c.Context(), message.Info.Chat, c.Client.BuildReaction(message.Info.Chat, message.Info.Sender, message.Info.ID, emoji))
	}
	if err != nil {
		c.Log.Error().Err(err).Str("To", message.Info.Chat.String()).Msg("Error sending reaction")
	}
}

func (c *Context) upload(data []byte, kind whatsmeow.MediaType, what string) (*whatsmeow.UploadResponse, bool) {
	uploaded, err := c.Client.Upload(c.Context(), data, kind)
	if err != nil {
		c.Log.Error().Err(err).Msgf("Error uploading %s", what)
		return nil, false
	}
	return &uploaded, true
}

func (c *Context) SendImageMessage(to types.JID, data []byte, opts *MessageOptions) {
	uploaded, ok := c.upload(data, whatsmeow.MediaImage, "image")
	if !ok {
		return
	}
	thumbnail, err := media.ResizeImg(data, 74, 74)
	if err != nil {
		c.Log.Warn().Err(err).Msg("Failed to generate image thumbnail")
	}

	img := &waProto.ImageMessage{
		URL:           proto.String(uploaded.URL),
		DirectPath:    proto.String(uploaded.DirectPath),
		MediaKey:      uploaded.MediaKey,
		Mimetype:      proto.String(http.DetectContentType(data)),
		FileEncSHA256: uploaded.FileEncSHA256,
		JPEGThumbnail: thumbnail,
		FileSHA256:    uploaded.FileSHA256,
		FileLength:    proto.Uint64(uint64(len(data))),
		ContextInfo:   contextInfo(opts),
	}
	if opts != nil {
		img.Caption = opts.Caption
		if opts.Mimetype != nil {
			img.Mimetype = opts.Mimetype
		}
	}
	c.send(to, &waProto.Message{ImageMessage: img}, "image")
}

func (c *Context) SendVideoMessage(to types.JID, data []byte, opts *MessageOptions) {
	uploaded, ok := c.upload(data, whatsmeow.MediaVideo, "video")
	if !ok {
		return
	}
	thumbnail, err := media.GetVideoThumbnail(data)
	if err != nil {
		c.Log.Warn().Err(err).Msg("Failed to generate video thumbnail")
	}

	vid := &waProto.VideoMessage{
		URL:           proto.String(uploaded.URL),
		DirectPath:    proto.String(uploaded.DirectPath),
		MediaKey:      uploaded.MediaKey,
		Mimetype:      proto.String(http.DetectContentType(data)),
		JPEGThumbnail: thumbnail,
		FileEncSHA256: uploaded.FileEncSHA256,
		FileSHA256:    uploaded.FileSHA256,
		FileLength:    proto.Uint64(uint64(len(data))),
		ContextInfo:   contextInfo(opts),
	}
	if opts != nil {
		vid.Caption = opts.Caption
		if opts.Mimetype != nil {
			vid.Mimetype = opts.Mimetype
		}
	}
	c.send(to, &waProto.Message{VideoMessage: vid}, "video")
}

func (c *Context) SendDocumentMessage(to types.JID, data []byte, opts *MessageOptions) {
	uploaded, ok := c.upload(data, whatsmeow.MediaDocument, "document")
	if !ok {
		return
	}

	doc := &waProto.DocumentMessage{
		FileName:      proto.String("file"),
		Mimetype:      proto.String(http.DetectContentType(data)),
		URL:           proto.String(uploaded.URL),
		DirectPath:    proto.String(uploaded.DirectPath),
		MediaKey:      uploaded.MediaKey,
		FileEncSHA256: uploaded.FileEncSHA256,
		FileSHA256:    uploaded.FileSHA256,
		FileLength:    proto.Uint64(uint64(len(data))),
		ContextInfo:   contextInfo(opts),
	}
	if opts != nil {
		doc.Caption = opts.Caption
		if opts.Mimetype != nil {
			doc.Mimetype = opts.Mimetype
		}
		if opts.FileName != nil {
			doc.FileName = opts.FileName
		}
	}
	c.send(to, &waProto.Message{DocumentMessage: doc}, "document")
}

func (c *Context) SendStickerMessage(to types.JID, data []byte, opts *MessageOptions) {
	uploaded, ok := c.upload(data, whatsmeow.MediaImage, "sticker")
	if !ok {
		return
	}
	c.send(to, &waProto.Message{
		StickerMessage: &waProto.StickerMessage{
			URL:           proto.String(uploaded.URL),
			DirectPath:    proto.String(uploaded.DirectPath),
			MediaKey:      uploaded.MediaKey,
			Mimetype:      proto.String("image/webp"),
			FileEncSHA256: uploaded.FileEncSHA256,
			FileSHA256:    uploaded.FileSHA256,
			FileLength:    proto.Uint64(uint64(len(data))),
			ContextInfo:   contextInfo(opts),
		},
	}, "sticker")
}

func (c *Context) SendAudioMessage(to types.JID, data []byte, opts *MessageOptions) {
	uploaded, ok := c.upload(data, whatsmeow.MediaAudio, "audio")
	if !ok {
		return
	}

	audio := &waProto.AudioMessage{
		URL:           proto.String(uploaded.URL),
		DirectPath:    proto.String(uploaded.DirectPath),
		MediaKey:      uploaded.MediaKey,
		Mimetype:      proto.String("audio/mp4"),
		FileEncSHA256: uploaded.FileEncSHA256,
		FileSHA256:    uploaded.FileSHA256,
		FileLength:    proto.Uint64(uint64(len(data))),
		ContextInfo:   contextInfo(opts),
	}
	if opts != nil {
		audio.Seconds = opts.Seconds
		if opts.Mimetype != nil {
			audio.Mimetype = opts.Mimetype
		}
	}
	if audio.Seconds == nil {
		d, _ := media.GetAudioDuration(data)
		audio.Seconds = proto.Uint32(d)
	}
	c.send(to, &waProto.Message{AudioMessage: audio}, "audio")
}

// WAReplier routes dispatcher notices through the normal reply helper.
type WAReplier struct{}

func (WAReplier) Reply(c *Context, text string) {
	c.Reply(text)
}
