// Package i18n translates the user-facing messages of the ecommerce API.
// Supported locales are en, pt and nl; anything else falls back to en.
package i18n

import (
	"fmt"
	"strings"
	"sync"

	"github.com/gin-gonic/gin"
)

const (
	// DefaultLocale is the default language locale (English).
	DefaultLocale = "en"
	// AcceptLanguageHeader is the HTTP header name for language preference.
	AcceptLanguageHeader = "Accept-Language"
)

var (
	defaultTranslator *Translator
	translatorOnce    sync.Once
)

// Translator resolves message keys per locale.
type Translator struct {
	messages map[string]map[string]string
}

// NewTranslator creates a new translator with the built-in messages.
func NewTranslator() *Translator {
	return &Translator{messages: getDefaultMessages()}
}

// GetTranslator returns the shared translator.
func GetTranslator() *Translator {
	translatorOnce.Do(func() {
		defaultTranslator = NewTranslator()
	})
	return defaultTranslator
}

// Supports reports whether locale has its own message set.
func (t *Translator) Supports(locale string) bool {
	_, ok := t.messages[locale]
	return ok
}

// Translate returns the message for key in locale. Keys missing from locale
// fall back to English; unknown keys are returned unchanged.
func (t *Translator) Translate(key, locale string) string {
	if msg, ok := t.messages[locale][key]; ok {
		return msg
	}
	if msg, ok := t.messages[DefaultLocale][key]; ok {
		return msg
	}
	return key
}

// Translatef translates key and formats the result with args.
func (t *Translator) Translatef(key, locale string, args ...any) string {
	return fmt.Sprintf(t.Translate(key, locale), args...)
}

// GetLocale picks the first supported language of the Accept-Language header,
// in the order the client listed them. Region subtags are ignored, so "pt-BR" is "pt".
func GetLocale(c *gin.Context) string {
	t := GetTranslator()
	for _, part := range strings.Split(c.GetHeader(AcceptLanguageHeader), ",") {
		lang := strings.TrimSpace(strings.SplitN(part, ";", 2)[0])
		if idx := strings.IndexByte(lang, '-'); idx > 0 {
			lang = lang[:idx]
		}
		lang = strings.ToLower(lang)
		if t.Supports(lang) {
			return lang
		}
	}
	return DefaultLocale
}

// getDefaultMessages returns the default message translations.
func getDefaultMessages() map[string]map[string]string {
	return map[string]map[string]string{
		"en": {
			"error.invalid_request":      "Invalid request",
			"error.invalid_request_body": "Please enter all fields",
			"error.internal_error":       "An unexpected error occurred",
			"error.login_required":       "Please login first",
			"error.unauthorized":         "Invalid user id",
			"error.forbidden":            "Only admins can access this resource",
			"error.not_found":            "Not found",
			"error.rate_limit_exceeded":  "Too many requests, please try again later",
			"error.conflict":             "Already exists",
			"error.timeout":              "Request timed out",
			"error.service_unavailable":  "Service temporarily unavailable",
			"error.invalid_coupon":       "Invalid coupon code",
			"error.photo_required":       "Please add a photo",
			"error.payment_unavailable":  "Payments are not available",

			"success.welcome":         "Welcome, %s",
			"success.user_deleted":    "User deleted successfully",
			"success.product_created": "Product created successfully",
			"success.product_updated": "Product updated successfully",
			"success.product_deleted": "Product deleted successfully",
			"success.order_placed":    "Order placed successfully",
			"success.order_processed": "Order processed successfully",
			"success.order_deleted":   "Order deleted successfully",
			"success.coupon_created":  "Coupon %s created successfully",
			"success.coupon_deleted":  "Coupon %s deleted successfully",
		},
		"pt": {
			"error.invalid_request":      "Requisição inválida",
			"error.invalid_request_body": "Preencha todos os campos",
			"error.internal_error":       "Ocorreu um erro inesperado",
			"error.login_required":       "Faça login primeiro",
			"error.unauthorized":         "ID de usuário inválido",
			"error.forbidden":            "Somente administradores podem acessar este recurso",
			"error.not_found":            "Não encontrado",
			"error.rate_limit_exceeded":  "Muitas requisições, tente novamente mais tarde",
			"error.conflict":             "Já existe",
			"error.timeout":              "Tempo da requisição esgotado",
			"error.service_unavailable":  "Serviço temporariamente indisponível",
			"error.invalid_coupon":       "Código de cupom inválido",
			"error.photo_required":       "Adicione uma foto",
			"error.payment_unavailable":  "Pagamentos não estão disponíveis",

			"success.welcome":         "Bem-vindo, %s",
			"success.user_deleted":    "Usuário removido com sucesso",
			"success.product_created": "Produto criado com sucesso",
			"success.product_updated": "Produto atualizado com sucesso",
			"success.product_deleted": "Produto removido com sucesso",
			"success.order_placed":    "Pedido realizado com sucesso",
			"success.order_processed": "Pedido processado com sucesso",
			"success.order_deleted":   "Pedido removido com sucesso",
			"success.coupon_created":  "Cupom %s criado com sucesso",
			"success.coupon_deleted":  "Cupom %s removido com sucesso",
		},
		"nl": {
			"error.invalid_request":      "Ongeldig verzoek",
			"error.invalid_request_body": "Vul alle velden in",
			"error.internal_error":       "Er is een onverwachte fout opgetreden",
			"error.login_required":       "Log eerst in",
			"error.unauthorized":         "Ongeldige gebruikers-id",
			"error.forbidden":            "Alleen beheerders hebben toegang",
			"error.not_found":            "Niet gevonden",
			"error.rate_limit_exceeded":  "Te veel verzoeken, probeer het later opnieuw",
			"error.conflict":             "Bestaat al",
			"error.timeout":              "Verzoek duurde te lang",
			"error.service_unavailable":  "Dienst tijdelijk niet beschikbaar",
			"error.invalid_coupon":       "Ongeldige kortingscode",
			"error.photo_required":       "Voeg een foto toe",
			"error.payment_unavailable":  "Betalingen zijn niet beschikbaar",

			"success.welcome":         "Welkom, %s",
			"success.user_deleted":    "Gebruiker succesvol verwijderd",
			"success.product_created": "Product succesvol aangemaakt",
			"success.product_updated": "Product succesvol bijgewerkt",
			"success.product_deleted": "Product succesvol verwijderd",
			"success.order_placed":    "Bestelling succesvol geplaatst",
			"success.order_processed": "Bestelling succesvol verwerkt",
			"success.order_deleted":   "Bestelling succesvol verwijderd",
			"success.coupon_created":  "Kortingscode %s succesvol aangemaakt",
			"success.coupon_deleted":  "Kortingscode %s succesvol verwijderd",
		},
	}
}
