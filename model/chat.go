package model

// Wire types for the chat platform Web API (Slack-compatible).

// ChatMessage is one message in a channel's history.
type ChatMessage struct {
	UserID    string `json:"user"`
	Text      string `json:"text"`
	Timestamp string `json:"ts"`
}

// ChatHistoryResponse is the channel-history listing.
type ChatHistoryResponse struct {
	OK       bool          `json:"ok"`
	Error    string        `json:"error,omitempty"`
	Messages []ChatMessage `json:"messages"`
}

// ChatOpenResponse is the open-direct-channel response.
type ChatOpenResponse struct {
	OK      bool   `json:"ok"`
	Error   string `json:"error,omitempty"`
	Channel struct {
		ID string `json:"id"`
	} `json:"channel"`
}

// ChatPostResponse is the post-message response.
type ChatPostResponse struct {
	OK    bool   `json:"ok"`
	Error string `json:"error,omitempty"`
}

// Block is one element of a structured chat message. Only the fields for
// the block types the formatter emits are modeled.
type Block struct {
	Type     string     `json:"type"`
	Text     *BlockText `json:"text,omitempty"`
	ImageURL string     `json:"image_url,omitempty"`
	AltText  string     `json:"alt_text,omitempty"`
}

// BlockText is the text object inside header and section blocks.
type BlockText struct {
	Type string `json:"type"` // "plain_text" or "mrkdwn"
	Text string `json:"text"`
}

// HeaderBlock builds a plain-text header block.
func HeaderBlock(text string) Block {
	return Block{Type: "header", Text: &BlockText{Type: "plain_text", Text: text}}
}

// SectionBlock builds a mrkdwn section block.
func SectionBlock(text string) Block {
	return Block{Type: "section", Text: &BlockText{Type: "mrkdwn", Text: text}}
}

// ImageBlock builds an image block.
func ImageBlock(url, alt string) Block {
	return Block{Type: "image", ImageURL: url, AltText: alt}
}

// DividerBlock builds a divider block.
func DividerBlock() Block {
	return Block{Type: "divider"}
}
