package common

// AccessTokenCookieName is the cookie carrying the signed session token.
const AccessTokenCookieName = "access_token"

// FlashMessageCookieName is the cookie carrying a one-shot notice that is
// shown on the next page render and then cleared.
const FlashMessageCookieName = "flash_message"

// LoginRequiredMessage is the flash text set when a protected page is
// requested without a valid session.
const LoginRequiredMessage = "You need to log in to access this page."
