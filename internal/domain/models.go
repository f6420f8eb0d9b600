package domain

import "time"

type VipLevel string

const (
	VIP      VipLevel = "VIP"
	VVIP     VipLevel = "VVIP"
	VVIPKing VipLevel = "VVIP_KING"
)

// BetChoice is a wager side; it doubles as the game result type.
type BetChoice string

const (
	BetGoal   BetChoice = "goal"
	BetNoGoal BetChoice = "nogoal"
	// BetAny is only valid inside control rules.
	BetAny BetChoice = "any"
)

func (b BetChoice) Valid() bool {
	return b == BetGoal || b == BetNoGoal
}

// Opposite returns the losing side for a given choice.
func (b BetChoice) Opposite() BetChoice {
	if b == BetGoal {
		return BetNoGoal
	}
	return BetGoal
}

type RequestStatus string

const (
	StatusPending  RequestStatus = "pending"
	StatusApproved RequestStatus = "approved"
	StatusRejected RequestStatus = "rejected"
)

type RuleType string

const (
	RuleExact RuleType = "exact"
	RuleRange RuleType = "range"
)

type RuleAction string

const (
	ActionWin  RuleAction = "win"
	ActionLose RuleAction = "lose"
)

const FraudDuplicateApprovedTxn = "duplicate_approved_txn"

type BannedStatus struct {
	IsBanned      bool       `json:"isBanned"`
	Reason        string     `json:"reason"`
	BannedAt      *time.Time `json:"bannedAt"`
	BannedIPs     []string   `json:"bannedIPs"`
	BannedDevices []string   `json:"bannedDevices"`
}

type FraudAttempt struct {
	Type          string    `json:"type"`
	TransactionID string    `json:"transactionId"`
	Timestamp     time.Time `json:"timestamp"`
}

// PendingClaimBet is the withdrawal lock set by a reward claim: until a
// wager of at least MinBet in Currency is placed, withdrawals in that
// currency are blocked.
type PendingClaimBet struct {
	Currency     Currency  `json:"currency"`
	MinBet       float64   `json:"minBet"`
	RewardAmount float64   `json:"rewardAmount"`
	ClaimedAt    time.Time `json:"claimedAt"`
}

type GameRecord struct {
	ID         string    `json:"id"`
	BetChoice  BetChoice `json:"betChoice"`
	BetAmount  float64   `json:"betAmount"`
	Currency   Currency  `json:"currency"`
	Result     BetChoice `json:"result"`
	Won        bool      `json:"won"`
	WinAmount  float64   `json:"winAmount"`
	ProfitLoss float64   `json:"profitLoss"`
	VideoID    string    `json:"videoId,omitempty"`
	Controlled bool      `json:"controlled"`
	Timestamp  time.Time `json:"timestamp"`
}

// DepositRecord is the denormalized mirror of a Deposit inside the owning
// user's history. Source is "agent" for auto-approved agent deposits.
type DepositRecord struct {
	DepositID     string        `json:"depositId"`
	Amount        float64       `json:"amount"`
	Currency      Currency      `json:"currency"`
	Status        RequestStatus `json:"status"`
	Source        string        `json:"source,omitempty"`
	AgentID       string        `json:"agentId,omitempty"`
	AgentUsername string        `json:"agentUsername,omitempty"`
	Reason        string        `json:"reason,omitempty"`
	Timestamp     time.Time     `json:"timestamp"`
}

type WithdrawRecord struct {
	WithdrawID string        `json:"withdrawId"`
	Amount     float64       `json:"amount"`
	Currency   Currency      `json:"currency"`
	Status     RequestStatus `json:"status"`
	Reason     string        `json:"reason,omitempty"`
	Timestamp  time.Time     `json:"timestamp"`
}

// AgentFunding records the most recent agent that funded a user in a
// currency; it scopes which withdrawals that agent may adjudicate.
type AgentFunding struct {
	AgentID       string    `json:"agentId"`
	AgentUsername string    `json:"agentUsername"`
	LastDeposit   time.Time `json:"lastDeposit"`
}

type User struct {
	ID               string   `json:"id"`
	Phone            string   `json:"phone"`
	Password         string   `json:"password,omitempty"`
	Username         string   `json:"username"`
	Email            string   `json:"email"`
	Balance          Amounts  `json:"balance"`
	ActiveCurrency   Currency `json:"activeCurrency"`
	VipLevel         VipLevel `json:"vipLevel"`
	VvipCurrencies   Flags    `json:"vvipCurrencies"`
	TotalDeposits    Amounts  `json:"totalDeposits"`
	TotalWithdrawals Amounts  `json:"totalWithdrawals"`
	TotalWinnings    Amounts  `json:"totalWinnings"`
	TotalLosses      Amounts  `json:"totalLosses"`
	TotalTurnover    Amounts  `json:"totalTurnover"`
	TotalGamesPlayed int      `json:"totalGamesPlayed"`
	TotalGamesWon    int      `json:"totalGamesWon"`
	TotalGamesLost   int      `json:"totalGamesLost"`

	GameHistory     []GameRecord     `json:"gameHistory"`
	DepositHistory  []DepositRecord  `json:"depositHistory"`
	WithdrawHistory []WithdrawRecord `json:"withdrawHistory"`

	ClaimedRewards  []Currency       `json:"claimedRewards"`
	PendingClaimBet *PendingClaimBet `json:"pendingClaimBet"`

	BannedStatus  BannedStatus   `json:"bannedStatus"`
	FraudAttempts []FraudAttempt `json:"fraudAttempts"`

	TodayWithdrawCount int        `json:"todayWithdrawCount"`
	LastWithdrawDate   *time.Time `json:"lastWithdrawDate"`

	DepositedByAgent map[Currency]AgentFunding `json:"depositedByAgent,omitempty"`

	Online    bool       `json:"online"`
	DeviceID  string     `json:"deviceId"`
	IPAddress string     `json:"ipAddress"`
	LastLogin *time.Time `json:"lastLogin"`
	CreatedAt time.Time  `json:"createdAt"`
	UpdatedAt time.Time  `json:"updatedAt"`
}

// Safe returns a copy with the credential secret stripped, for responses.
func (u User) Safe() User {
	u.Password = ""
	return u
}

func (u User) Banned() bool {
	return u.BannedStatus.IsBanned
}

type Deposit struct {
	ID              string        `json:"id"`
	UserID          string        `json:"userId"`
	Username        string        `json:"username"`
	Amount          float64       `json:"amount"`
	Currency        Currency      `json:"currency"`
	PaymentMethodID string        `json:"paymentMethodId"`
	PaymentName     string        `json:"paymentName"`
	TransactionID   string        `json:"transactionId"`
	Status          RequestStatus `json:"status"`
	AdminNote       string        `json:"adminNote"`
	CreatedAt       time.Time     `json:"createdAt"`
	UpdatedAt       time.Time     `json:"updatedAt"`
}

type Withdrawal struct {
	ID        string        `json:"id"`
	UserID    string        `json:"userId"`
	Username  string        `json:"username"`
	Amount    float64       `json:"amount"`
	Currency  Currency      `json:"currency"`
	Status    RequestStatus `json:"status"`
	AdminNote string        `json:"adminNote"`
	// AgentID marks the withdrawal as agent-scoped: set at submission when
	// the user's funds in the currency were last provided by that agent.
	AgentID           string    `json:"agentId,omitempty"`
	ApprovedBy        string    `json:"approvedBy,omitempty"`
	ApprovedByAgentID string    `json:"approvedByAgentId,omitempty"`
	RejectedBy        string    `json:"rejectedBy,omitempty"`
	RejectedByAgentID string    `json:"rejectedByAgentId,omitempty"`
	CreatedAt         time.Time `json:"createdAt"`
	UpdatedAt         time.Time `json:"updatedAt"`
}

type AgentTransaction struct {
	ID        string    `json:"id"`
	Type      string    `json:"type"`
	UserID    string    `json:"userId,omitempty"`
	Username  string    `json:"username,omitempty"`
	Currency  Currency  `json:"currency"`
	Amount    float64   `json:"amount"`
	Note      string    `json:"note"`
	Timestamp time.Time `json:"timestamp"`
}

// Agent transaction history event types.
const (
	AgentTxAdminDeposit      = "admin_deposit"
	AgentTxAdminWithdraw     = "admin_withdraw"
	AgentTxDepositToUser     = "deposit_to_user"
	AgentTxWithdrawalApprove = "user_withdrawal_approved"
	AgentTxWithdrawalReject  = "user_withdrawal_rejected"
)

type Agent struct {
	ID                      string             `json:"id"`
	TelegramUserID          string             `json:"telegramUserId"`
	Username                string             `json:"username"`
	Password                string             `json:"password,omitempty"`
	Balance                 Amounts            `json:"balance"`
	TotalDeposited          Amounts            `json:"totalDeposited"`
	TotalWithdrawalsHandled Amounts            `json:"totalWithdrawalsHandled"`
	TransactionHistory      []AgentTransaction `json:"transactionHistory"`
	DepositedUsers          []string           `json:"depositedUsers"`
	Banned                  bool               `json:"banned"`
	Online                  bool               `json:"online"`
	LastLogin               *time.Time         `json:"lastLogin"`
	CreatedAt               time.Time          `json:"createdAt"`
	UpdatedAt               time.Time          `json:"updatedAt"`
}

func (a Agent) Safe() Agent {
	a.Password = ""
	return a
}

// HasDepositedTo reports whether the agent has ever funded the user.
func (a *Agent) HasDepositedTo(userID string) bool {
	for _, id := range a.DepositedUsers {
		if id == userID {
			return true
		}
	}
	return false
}

type ControlRule struct {
	ID        string     `json:"id"`
	Type      RuleType   `json:"type"`
	BetChoice BetChoice  `json:"betChoice"`
	Currency  Currency   `json:"currency"`
	BetAmount float64    `json:"betAmount"`
	MinAmount float64    `json:"minAmount"`
	MaxAmount float64    `json:"maxAmount"`
	Action    RuleAction `json:"action"`
	Active    bool       `json:"active"`
	CreatedAt time.Time  `json:"createdAt"`
}

// Matches reports whether the rule applies to the wager side and amount.
// Currency and active filtering is the caller's responsibility.
func (r ControlRule) Matches(choice BetChoice, amount float64) bool {
	if r.BetChoice != choice && r.BetChoice != BetAny {
		return false
	}
	switch r.Type {
	case RuleExact:
		return amount == r.BetAmount
	case RuleRange:
		return amount >= r.MinAmount && amount <= r.MaxAmount
	}
	return false
}

// Controls is the rigging rule set singleton.
type Controls struct {
	Enabled bool          `json:"enabled"`
	Rules   []ControlRule `json:"rules"`
}

type Video struct {
	ID        string    `json:"id"`
	Type      BetChoice `json:"type"`
	URL       string    `json:"url"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"createdAt"`
}

// VideoPool holds the presentation assets keyed by result type.
type VideoPool struct {
	Goal   []Video `json:"goal"`
	NoGoal []Video `json:"nogoal"`
}

func (p VideoPool) ByResult(result BetChoice) []Video {
	if result == BetGoal {
		return p.Goal
	}
	return p.NoGoal
}

type PaymentMethod struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Address   string    `json:"address"`
	Note      string    `json:"note"`
	IconURL   string    `json:"iconUrl"`
	QRCodeURL string    `json:"qrCodeUrl"`
	Currency  Currency  `json:"currency"`
	Active    bool      `json:"active"`
	CreatedAt time.Time `json:"createdAt"`
}

// PaymentPool holds payment methods keyed by currency.
type PaymentPool struct {
	MMK []PaymentMethod `json:"MMK"`
	USD []PaymentMethod `json:"USD"`
	CNY []PaymentMethod `json:"CNY"`
}

func (p PaymentPool) ByCurrency(c Currency) []PaymentMethod {
	switch c {
	case MMK:
		return p.MMK
	case USD:
		return p.USD
	case CNY:
		return p.CNY
	}
	return nil
}

func (p *PaymentPool) SetCurrency(c Currency, methods []PaymentMethod) {
	switch c {
	case MMK:
		p.MMK = methods
	case USD:
		p.USD = methods
	case CNY:
		p.CNY = methods
	}
}

type Contact struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	ImgURL    string    `json:"imgUrl"`
	Link      string    `json:"link"`
	Address   string    `json:"address"`
	Type      string    `json:"type"`
	CreatedAt time.Time `json:"createdAt"`
}
