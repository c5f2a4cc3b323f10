package discord

import (
	"strconv"
	"unicode/utf8"
)

// embed.go contains the structures of message embeds.

// EmbedType is the kind of content an embed was generated for.
type EmbedType string

const (
	EmbedTypeImage                 EmbedType = "image"
	EmbedTypeVideo                 EmbedType = "video"
	EmbedTypeLink                  EmbedType = "link"
	EmbedTypeRich                  EmbedType = "rich"
	EmbedTypeAutoModerationMessage EmbedType = "auto_moderation_message"
	EmbedTypeUnknown               EmbedType = ""
)

var embedTypes = []EmbedType{
	EmbedTypeImage,
	EmbedTypeVideo,
	EmbedTypeLink,
	EmbedTypeRich,
	EmbedTypeAutoModerationMessage,
}

// EmbedTypeFromKey returns the embed type for a wire key, or EmbedTypeUnknown.
func EmbedTypeFromKey(key string) EmbedType {
	return fromCode(embedTypes, EmbedType(key), EmbedTypeUnknown)
}

func (t *EmbedType) UnmarshalJSON(b []byte) error {
	return unmarshalCode(b, t, EmbedTypeFromKey)
}

const (
	MaxEmbedTitleLength       = 256
	MaxEmbedDescriptionLength = 4096
	MaxEmbedFields            = 25
	MaxEmbedFieldNameLength   = 256
	MaxEmbedFieldValueLength  = 1024
	MaxEmbedFooterLength      = 2048
	MaxEmbedAuthorLength      = 256
	MaxEmbedTotalLength       = 6000
)

// Embed represents a message embed.
type Embed struct {
	Timestamp   *Timestamp     `json:"timestamp,omitempty"`
	Footer      *EmbedFooter   `json:"footer,omitempty"`
	Image       *EmbedMedia    `json:"image,omitempty"`
	Thumbnail   *EmbedMedia    `json:"thumbnail,omitempty"`
	Video       *EmbedMedia    `json:"video,omitempty"`
	Provider    *EmbedProvider `json:"provider,omitempty"`
	Author      *EmbedAuthor   `json:"author,omitempty"`
	Type        EmbedType      `json:"type,omitempty"`
	Description string         `json:"description,omitempty"`
	URL         string         `json:"url,omitempty"`
	Title       string         `json:"title,omitempty"`
	Fields      EmbedFieldList `json:"fields,omitempty"`
	Color       int32          `json:"color,omitempty"`
}

func NewEmbed() *Embed {
	return &Embed{Type: EmbedTypeRich}
}

func (e *Embed) SetTitle(title string) *Embed {
	e.Title = title

	return e
}

func (e *Embed) SetDescription(description string) *Embed {
	e.Description = description

	return e
}

func (e *Embed) SetURL(url string) *Embed {
	e.URL = url

	return e
}

func (e *Embed) SetColor(color int32) *Embed {
	e.Color = color

	return e
}

func (e *Embed) SetFooter(text, iconURL string) *Embed {
	e.Footer = &EmbedFooter{Text: text, IconURL: iconURL}

	return e
}

func (e *Embed) SetAuthor(name, url, iconURL string) *Embed {
	e.Author = &EmbedAuthor{Name: name, URL: url, IconURL: iconURL}

	return e
}

func (e *Embed) SetImage(url string) *Embed {
	e.Image = &EmbedMedia{URL: url}

	return e
}

func (e *Embed) AddField(name, value string, inline bool) *Embed {
	e.Fields = append(e.Fields, EmbedField{Name: name, Value: value, Inline: inline})

	return e
}

// Length is the number of characters discord counts towards MaxEmbedTotalLength.
func (e Embed) Length() int {
	length := utf8.RuneCountInString(e.Title) + utf8.RuneCountInString(e.Description)

	if e.Footer != nil {
		length += utf8.RuneCountInString(e.Footer.Text)
	}

	if e.Author != nil {
		length += utf8.RuneCountInString(e.Author.Name)
	}

	for _, field := range e.Fields {
		length += utf8.RuneCountInString(field.Name) + utf8.RuneCountInString(field.Value)
	}

	return length
}

// Validate checks the embed against discord's size limits.
func (e Embed) Validate() error {
	if err := validateLength("title", e.Title, 0, MaxEmbedTitleLength); err != nil {
		return err
	}

	if err := validateLength("description", e.Description, 0, MaxEmbedDescriptionLength); err != nil {
		return err
	}

	if len(e.Fields) > MaxEmbedFields {
		return &ValidationError{Field: "fields", Message: "may not contain more than " + strconv.Itoa(MaxEmbedFields) + " fields"}
	}

	for _, field := range e.Fields {
		if err := validateLength("fields.name", field.Name, 1, MaxEmbedFieldNameLength); err != nil {
			return err
		}

		if err := validateLength("fields.value", field.Value, 1, MaxEmbedFieldValueLength); err != nil {
			return err
		}
	}

	if e.Footer != nil {
		if err := validateLength("footer.text", e.Footer.Text, 1, MaxEmbedFooterLength); err != nil {
			return err
		}
	}

	if e.Author != nil {
		if err := validateLength("author.name", e.Author.Name, 1, MaxEmbedAuthorLength); err != nil {
			return err
		}
	}

	if e.Length() > MaxEmbedTotalLength {
		return &ValidationError{Field: "embed", Message: "may not be longer than " + strconv.Itoa(MaxEmbedTotalLength) + " characters"}
	}

	return nil
}

// EmbedFooter represents the footer of an embed.
type EmbedFooter struct {
	Text         string `json:"text"`
	IconURL      string `json:"icon_url,omitempty"`
	ProxyIconURL string `json:"proxy_icon_url,omitempty"`
}

// EmbedMedia represents an image, thumbnail or video in an embed.
type EmbedMedia struct {
	URL      string `json:"url,omitempty"`
	ProxyURL string `json:"proxy_url,omitempty"`
	Height   int32  `json:"height,omitempty"`
	Width    int32  `json:"width,omitempty"`
}

// EmbedProvider represents the provider of an embed.
type EmbedProvider struct {
	Name string `json:"name,omitempty"`
	URL  string `json:"url,omitempty"`
}

// EmbedAuthor represents the author of an embed.
type EmbedAuthor struct {
	Name         string `json:"name"`
	URL          string `json:"url,omitempty"`
	IconURL      string `json:"icon_url,omitempty"`
	ProxyIconURL string `json:"proxy_icon_url,omitempty"`
}

// EmbedField represents a field in an embed.
type EmbedField struct {
	Name   string `json:"name"`
	Value  string `json:"value"`
	Inline bool   `json:"inline"`
}
