package identity

import (
	"context"
	"errors"
	"fmt"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/awserr"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"
	cognito "github.com/aws/aws-sdk-go/service/cognitoidentityprovider"

	"github.com/cinematica/cinematica-api/internal/apperrors"
	"github.com/cinematica/cinematica-api/internal/config"
)

// Client wraps the Cognito identity provider. Account state, credentials and
// token issuance all live upstream; this service only proxies and maps errors
// into the closed taxonomy.
type Client struct {
	idp         *cognito.CognitoIdentityProvider
	userPoolID  string
	appClientID string
}

type AuthResult struct {
	UserID       string `json:"user_id"`
	IDToken      string `json:"id_token"`
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

type Account struct {
	UserID   string
	Username string
	Email    string
}

func NewClient(cfg *config.AWSConfig) (*Client, error) {
	sess, err := session.NewSession(&aws.Config{
		Region:      aws.String(cfg.Region),
		Credentials: credentials.NewStaticCredentials(cfg.AccessKeyID, cfg.AccessSecretKey, ""),
		MaxRetries:  aws.Int(3),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create aws session: %w", err)
	}

	return &Client{
		idp:         cognito.New(sess),
		userPoolID:  cfg.UserPoolID,
		appClientID: cfg.AppClientID,
	}, nil
}

func (c *Client) Register(ctx context.Context, username, password, email string) error {
	_, err := c.idp.SignUpWithContext(ctx, &cognito.SignUpInput{
		ClientId: aws.String(c.appClientID),
		Username: aws.String(username),
		Password: aws.String(password),
		UserAttributes: []*cognito.AttributeType{
			{Name: aws.String("email"), Value: aws.String(email)},
		},
	})
	if err != nil {
		return mapCognitoError(err, "registration failed")
	}
	return nil
}

// ConfirmRegistration confirms the sign-up code and returns the confirmed
// account so a local user row can be created.
func (c *Client) ConfirmRegistration(ctx context.Context, username, code string) (*Account, error) {
	_, err := c.idp.ConfirmSignUpWithContext(ctx, &cognito.ConfirmSignUpInput{
		ClientId:         aws.String(c.appClientID),
		Username:         aws.String(username),
		ConfirmationCode: aws.String(code),
	})
	if err != nil {
		return nil, mapCognitoError(err, "confirmation failed")
	}
	return c.GetAccountByUsername(ctx, username)
}

func (c *Client) Login(ctx context.Context, username, password string) (*AuthResult, error) {
	out, err := c.idp.InitiateAuthWithContext(ctx, &cognito.InitiateAuthInput{
		AuthFlow: aws.String(cognito.AuthFlowTypeUserPasswordAuth),
		ClientId: aws.String(c.appClientID),
		AuthParameters: map[string]*string{
			"USERNAME": aws.String(username),
			"PASSWORD": aws.String(password),
		},
	})
	if err != nil {
		return nil, mapCognitoError(err, "login failed")
	}
	if out.AuthenticationResult == nil {
		return nil, apperrors.New(apperrors.KindUnauthorized, "login challenge not supported")
	}

	account, err := c.GetAccountByUsername(ctx, username)
	if err != nil {
		return nil, err
	}

	return &AuthResult{
		UserID:       account.UserID,
		IDToken:      aws.StringValue(out.AuthenticationResult.IdToken),
		AccessToken:  aws.StringValue(out.AuthenticationResult.AccessToken),
		RefreshToken: aws.StringValue(out.AuthenticationResult.RefreshToken),
	}, nil
}

func (c *Client) RefreshAccessToken(ctx context.Context, refreshToken string) (*AuthResult, error) {
	out, err := c.idp.InitiateAuthWithContext(ctx, &cognito.InitiateAuthInput{
		AuthFlow: aws.String(cognito.AuthFlowTypeRefreshTokenAuth),
		ClientId: aws.String(c.appClientID),
		AuthParameters: map[string]*string{
			"REFRESH_TOKEN": aws.String(refreshToken),
		},
	})
	if err != nil {
		return nil, mapCognitoError(err, "token refresh failed")
	}
	if out.AuthenticationResult == nil {
		return nil, apperrors.New(apperrors.KindUnauthorized, "token refresh failed")
	}
	return &AuthResult{
		IDToken:     aws.StringValue(out.AuthenticationResult.IdToken),
		AccessToken: aws.StringValue(out.AuthenticationResult.AccessToken),
	}, nil
}

func (c *Client) ResendConfirmationCode(ctx context.Context, email string) error {
	account, err := c.FindAccountByEmail(ctx, email)
	if err != nil {
		return err
	}
	_, err = c.idp.ResendConfirmationCodeWithContext(ctx, &cognito.ResendConfirmationCodeInput{
		ClientId: aws.String(c.appClientID),
		Username: aws.String(account.Username),
	})
	if err != nil {
		return mapCognitoError(err, "failed to resend confirmation code")
	}
	return nil
}

func (c *Client) RequestPasswordReset(ctx context.Context, email string) error {
	account, err := c.FindAccountByEmail(ctx, email)
	if err != nil {
		return err
	}
	_, err = c.idp.ForgotPasswordWithContext(ctx, &cognito.ForgotPasswordInput{
		ClientId: aws.String(c.appClientID),
		Username: aws.String(account.Username),
	})
	if err != nil {
		return mapCognitoError(err, "failed to request password reset")
	}
	return nil
}

func (c *Client) ResetPassword(ctx context.Context, email, password, code string) error {
	account, err := c.FindAccountByEmail(ctx, email)
	if err != nil {
		return err
	}
	_, err = c.idp.ConfirmForgotPasswordWithContext(ctx, &cognito.ConfirmForgotPasswordInput{
		ClientId:         aws.String(c.appClientID),
		Username:         aws.String(account.Username),
		Password:         aws.String(password),
		ConfirmationCode: aws.String(code),
	})
	if err != nil {
		return mapCognitoError(err, "password reset failed")
	}
	return nil
}

func (c *Client) GetAccountByUsername(ctx context.Context, username string) (*Account, error) {
	out, err := c.idp.AdminGetUserWithContext(ctx, &cognito.AdminGetUserInput{
		UserPoolId: aws.String(c.userPoolID),
		Username:   aws.String(username),
	})
	if err != nil {
		return nil, mapCognitoError(err, "user lookup failed")
	}
	account := &Account{Username: aws.StringValue(out.Username)}
	for _, attr := range out.UserAttributes {
		switch aws.StringValue(attr.Name) {
		case "sub":
			account.UserID = aws.StringValue(attr.Value)
		case "email":
			account.Email = aws.StringValue(attr.Value)
		}
	}
	return account, nil
}

// GetAccountBySub resolves a user id (the token subject) back to its account.
func (c *Client) GetAccountBySub(ctx context.Context, sub string) (*Account, error) {
	return c.findAccount(ctx, fmt.Sprintf("sub = %q", sub))
}

func (c *Client) FindAccountByEmail(ctx context.Context, email string) (*Account, error) {
	return c.findAccount(ctx, fmt.Sprintf("email = %q", email))
}

func (c *Client) findAccount(ctx context.Context, filter string) (*Account, error) {
	out, err := c.idp.ListUsersWithContext(ctx, &cognito.ListUsersInput{
		UserPoolId: aws.String(c.userPoolID),
		Filter:     aws.String(filter),
		Limit:      aws.Int64(1),
	})
	if err != nil {
		return nil, mapCognitoError(err, "user lookup failed")
	}
	if len(out.Users) == 0 {
		return nil, apperrors.New(apperrors.KindNotFound, "user not found")
	}

	user := out.Users[0]
	account := &Account{Username: aws.StringValue(user.Username)}
	for _, attr := range user.Attributes {
		switch aws.StringValue(attr.Name) {
		case "sub":
			account.UserID = aws.StringValue(attr.Value)
		case "email":
			account.Email = aws.StringValue(attr.Value)
		}
	}
	return account, nil
}

// mapCognitoError folds provider error codes into the closed taxonomy so SDK
// text never reaches clients.
func mapCognitoError(err error, message string) error {
	var aerr awserr.Error
	if errors.As(err, &aerr) {
		switch aerr.Code() {
		case cognito.ErrCodeUsernameExistsException, cognito.ErrCodeAliasExistsException:
			return apperrors.Wrap(apperrors.KindConflict, "username or email already registered", err)
		case cognito.ErrCodeUserNotFoundException:
			return apperrors.Wrap(apperrors.KindNotFound, "user not found", err)
		case cognito.ErrCodeNotAuthorizedException, cognito.ErrCodeUserNotConfirmedException:
			return apperrors.Wrap(apperrors.KindUnauthorized, message, err)
		case cognito.ErrCodeInvalidPasswordException, cognito.ErrCodeInvalidParameterException,
			cognito.ErrCodeCodeMismatchException, cognito.ErrCodeExpiredCodeException:
			return apperrors.Wrap(apperrors.KindValidationFailed, message, err)
		case cognito.ErrCodeTooManyRequestsException, cognito.ErrCodeLimitExceededException,
			cognito.ErrCodeInternalErrorException:
			return apperrors.Wrap(apperrors.KindUpstreamUnavailable, "identity provider unavailable", err)
		}
	}
	return apperrors.Wrap(apperrors.KindUpstreamUnavailable, "identity provider unavailable", err)
}
