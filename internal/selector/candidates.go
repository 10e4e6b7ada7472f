package selector

// The portal's markup is unversioned and selectors drift between deploys.
// Every lookup therefore runs against an ordered candidate list; the first
// visible match wins and adding a fallback is a data change, not a logic
// change. Order is the only contract.
var (
	UsernameFields = []string{
		`input[name="username"]`, `#username`, `input[name="email"]`,
		`#email`, `input[type="email"]`, `input[type="text"]`,
	}

	PasswordFields = []string{
		`input[name="password"]`, `#password`, `input[type="password"]`,
	}

	SubmitControls = []string{
		`button[type="submit"]`, `input[type="submit"]`,
		`button:has-text("Inloggen")`, `button:has-text("Login")`, `button:has-text("Aanmelden")`,
	}

	ScheduleOpeners = []string{
		`button:has-text("Schedule")`, `a:has-text("Schedule")`,
		`a[href*="/testRounds/"]`,
	}

	CalendarContainers = []string{
		`#selection-calendar`, `.availability-table`, `[data-test*=avail]`,
		`[class*=availability]`, `[class*=calendar]`, `[role="table"]`, `table`,
	}

	ActionControls = []string{
		`button:has-text("Schedule")`,
		`a:has-text("Schedule")`,
		`[role="button"]:has-text("Schedule")`,
		`input[type="button"][value*="Schedule"]`,
		`input[type="submit"][value*="Schedule"]`,
	}

	ConfirmControls = []string{
		`button:has-text("Confirm")`, `button:has-text("Bevestig")`,
		`button:has-text("Bevestigen")`, `button:has-text("Yes")`, `button:has-text("Ja")`,
		`input[type="submit"]`,
	}
)
