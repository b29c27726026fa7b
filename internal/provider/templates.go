package provider

import (
	"fmt"
	"strings"
)

// a canned component template. Selection is first-match over the table,
// with a generic scaffold as the fallback, so generation is fully
// deterministic.
type codeTemplate struct {
	name          string
	componentName string
	kinds         []string
	suggestions   []string
	render        func(enriched EnrichedContext) (string, error)
}

var templateTable = []codeTemplate{
	{
		name:          "login-form",
		componentName: "LoginForm",
		kinds:         []string{"login form", "signup form", "form"},
		suggestions: []string{
			"Add a 'forgot password' link",
			"Add social sign-in buttons",
		},
		render: renderLoginForm,
	},
	{
		name:          "dashboard",
		componentName: "Dashboard",
		kinds:         []string{"dashboard", "chart", "table"},
		suggestions: []string{
			"Add a date range filter",
			"Make the cards reorderable",
		},
		render: renderDashboard,
	},
	{
		name:          "todo-list",
		componentName: "TodoList",
		kinds:         []string{"todo list", "list"},
		suggestions: []string{
			"Add drag-and-drop reordering",
			"Persist items to local storage",
		},
		render: renderTodoList,
	},
	{
		name:          "card",
		componentName: "InfoCard",
		kinds:         []string{"card", "profile page"},
		suggestions: []string{
			"Add an avatar image",
			"Show a hover shadow",
		},
		render: renderCard,
	},
	{
		name:          "button",
		componentName: "ActionButton",
		kinds:         []string{"button"},
		suggestions: []string{
			"Add a loading spinner state",
			"Add secondary and ghost variants",
		},
		render: renderButton,
	},
}

var scaffoldTemplate = codeTemplate{
	name:          "scaffold",
	componentName: "GeneratedComponent",
	suggestions: []string{
		"Describe the component in more detail for a richer result",
	},
	render: renderScaffold,
}

func selectTemplate(enriched EnrichedContext) codeTemplate {
	kind := enriched.Analysis.Entities.ComponentKind

	for _, tmpl := range templateTable {
		for _, k := range tmpl.kinds {
			if k == kind {
				return tmpl
			}
		}
	}

	return scaffoldTemplate
}

// theme derives color constants from the visual style answer or hints
func theme(enriched EnrichedContext) (accent, background, text string) {
	style := strings.ToLower(enriched.Answers["gap-visual-style"])

	if style == "" && len(enriched.Analysis.Entities.StyleHints) > 0 {
		style = enriched.Analysis.Entities.StyleHints[0]
	}

	switch style {
	case "dark", "monochrome":
		return "#818cf8", "#111827", "#f9fafb"
	case "playful", "colorful":
		return "#f472b6", "#fefce8", "#1f2937"
	case "minimal", "minimalist", "clean":
		return "#111827", "#ffffff", "#111827"
	default:
		return "#4f46e5", "#f9fafb", "#111827"
	}
}

// maxWidth picks a container width from the platform answer or hints
func maxWidth(enriched EnrichedContext) string {
	platform := strings.ToLower(enriched.Answers["gap-platform"])

	if platform == "" {
		for _, hint := range enriched.Analysis.Entities.PlatformHints {
			platform = hint
			break
		}
	}

	if strings.Contains(platform, "mobile") || platform == "ios" ||
		platform == "iphone" || platform == "android" {
		return "390px"
	}

	return "960px"
}

func interactive(enriched EnrichedContext) bool {
	return enriched.Answers["gap-interaction-behavior"] != "false"
}

func renderLoginForm(enriched EnrichedContext) (string, error) {
	accent, background, text := theme(enriched)

	return fmt.Sprintf(`import { useState } from "react";

const styles = {
  wrapper: { maxWidth: "%s", margin: "0 auto", padding: 24, background: "%s", color: "%s" },
  input: { display: "block", width: "100%%", padding: 12, marginBottom: 12, borderRadius: 8 },
  button: { width: "100%%", padding: 12, borderRadius: 8, background: "%s", color: "#fff", border: "none" },
};

export function LoginForm() {
  const [email, setEmail] = useState("");
  const [password, setPassword] = useState("");

  const handleSubmit = (e: React.FormEvent) => {
    e.preventDefault();
    console.log("sign in", { email });
  };

  return (
    <form style={styles.wrapper} onSubmit={handleSubmit}>
      <h2>Sign in</h2>
      <input
        style={styles.input}
        type="email"
        placeholder="Email"
        value={email}
        onChange={(e) => setEmail(e.target.value)}
      />
      <input
        style={styles.input}
        type="password"
        placeholder="Password"
        value={password}
        onChange={(e) => setPassword(e.target.value)}
      />
      <button style={styles.button} type="submit">Sign in</button>
    </form>
  );
}
`, maxWidth(enriched), background, text, accent), nil
}

func renderDashboard(enriched EnrichedContext) (string, error) {
	accent, background, text := theme(enriched)

	dataNote := enriched.Answers["gap-data-shape"]
	if dataNote == "" {
		dataNote = "key metrics"
	}

	return fmt.Sprintf(`const styles = {
  wrapper: { maxWidth: "%s", margin: "0 auto", padding: 24, background: "%s", color: "%s" },
  grid: { display: "grid", gridTemplateColumns: "repeat(auto-fit, minmax(220px, 1fr))", gap: 16 },
  card: { padding: 20, borderRadius: 12, background: "#ffffff", boxShadow: "0 1px 3px rgba(0,0,0,0.1)" },
  value: { fontSize: 32, fontWeight: 700, color: "%s" },
};

// displays %s
const metrics = [
  { label: "Total", value: "1,284" },
  { label: "Active", value: "312" },
  { label: "This week", value: "+48" },
];

export function Dashboard() {
  return (
    <div style={styles.wrapper}>
      <h2>Overview</h2>
      <div style={styles.grid}>
        {metrics.map((m) => (
          <div key={m.label} style={styles.card}>
            <div>{m.label}</div>
            <div style={styles.value}>{m.value}</div>
          </div>
        ))}
      </div>
    </div>
  );
}
`, maxWidth(enriched), background, text, accent, dataNote), nil
}

func renderTodoList(enriched EnrichedContext) (string, error) {
	accent, background, text := theme(enriched)

	toggle := ""
	if interactive(enriched) {
		toggle = `
  const toggle = (id: number) =>
    setItems(items.map((it) => (it.id === id ? { ...it, done: !it.done } : it)));
`
	}

	onClick := ""
	if interactive(enriched) {
		onClick = ` onClick={() => toggle(item.id)}`
	}

	return fmt.Sprintf(`import { useState } from "react";

const styles = {
  wrapper: { maxWidth: "%s", margin: "0 auto", padding: 24, background: "%s", color: "%s" },
  item: { padding: 12, borderRadius: 8, marginBottom: 8, background: "#ffffff", cursor: "pointer" },
  done: { textDecoration: "line-through", opacity: 0.5 },
  badge: { color: "%s", fontWeight: 600 },
};

export function TodoList() {
  const [items, setItems] = useState([
    { id: 1, text: "First task", done: false },
    { id: 2, text: "Second task", done: true },
  ]);
%s
  return (
    <div style={styles.wrapper}>
      <h2>
        Tasks <span style={styles.badge}>{items.filter((it) => !it.done).length}</span>
      </h2>
      {items.map((item) => (
        <div
          key={item.id}
          style={item.done ? { ...styles.item, ...styles.done } : styles.item}%s
        >
          {item.text}
        </div>
      ))}
    </div>
  );
}
`, maxWidth(enriched), background, text, accent, toggle, onClick), nil
}

func renderCard(enriched EnrichedContext) (string, error) {
	accent, background, text := theme(enriched)

	return fmt.Sprintf(`const styles = {
  card: {
    maxWidth: "%s",
    margin: "0 auto",
    padding: 24,
    borderRadius: 12,
    background: "%s",
    color: "%s",
    boxShadow: "0 1px 3px rgba(0,0,0,0.1)",
  },
  title: { margin: 0, color: "%s" },
};

export function InfoCard() {
  return (
    <div style={styles.card}>
      <h3 style={styles.title}>Card title</h3>
      <p>Supporting text that describes the card content.</p>
    </div>
  );
}
`, maxWidth(enriched), background, text, accent), nil
}

func renderButton(enriched EnrichedContext) (string, error) {
	accent, _, _ := theme(enriched)

	handler := ""
	if interactive(enriched) {
		handler = ` onClick={() => console.log("clicked")}`
	}

	return fmt.Sprintf(`const styles = {
  button: {
    padding: "12px 24px",
    borderRadius: 8,
    border: "none",
    background: "%s",
    color: "#ffffff",
    fontWeight: 600,
    cursor: "pointer",
  },
};

export function ActionButton({ label = "Click me" }: { label?: string }) {
  return (
    <button style={styles.button}%s>
      {label}
    </button>
  );
}
`, accent, handler), nil
}

func renderScaffold(enriched EnrichedContext) (string, error) {
	accent, background, text := theme(enriched)

	request := strings.TrimSpace(enriched.Request.Message)
	if request == "" {
		request = "an unspecified component"
	}

	return fmt.Sprintf(`const styles = {
  wrapper: { maxWidth: "%s", margin: "0 auto", padding: 24, background: "%s", color: "%s" },
  hint: { color: "%s" },
};

// scaffold for: %s
export function GeneratedComponent() {
  return (
    <div style={styles.wrapper}>
      <h2>New component</h2>
      <p style={styles.hint}>Replace this scaffold with your content.</p>
    </div>
  );
}
`, maxWidth(enriched), background, text, accent, request), nil
}
