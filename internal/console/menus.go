package console

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"alertsim/internal/model"
)

func (c *Console) manageSources() {
	for !c.eof {
		headerColor.Fprintln(c.out, "\n--- Alert Sources ---")
		fmt.Fprintln(c.out, "1. List sources")
		fmt.Fprintln(c.out, "2. Add source")
		fmt.Fprintln(c.out, "3. Remove source")
		fmt.Fprintln(c.out, "4. Back")
		fmt.Fprint(c.out, "Choice: ")
		switch c.readLine() {
		case "1":
			c.listSources()
		case "2":
			c.addSource()
		case "3":
			if name, ok := c.pickSource(); ok {
				if err := c.reg.Remove(name); err != nil {
					errorColor.Fprintf(c.out, "Error: %v\n", err)
				} else {
					successColor.Fprintf(c.out, "Removed %q.\n", name)
				}
			}
		case "4", "back":
			return
		case "":
			if c.eof {
				return
			}
		default:
			errorColor.Fprintln(c.out, "Invalid choice.")
		}
	}
}

func (c *Console) listSources() {
	names := c.reg.List()
	if len(names) == 0 {
		fmt.Fprintln(c.out, "No alert sources defined.")
		return
	}
	for _, name := range names {
		fields, _ := c.reg.Fields(name)
		thresholds, _ := c.reg.Thresholds(name)
		items, _ := c.reg.Items(name)
		fmt.Fprintf(c.out, "  %s: %d fields, %d thresholds, %d items\n",
			name, len(fields), len(thresholds), len(items))
	}
}

func (c *Console) addSource() {
	name := c.promptString("Source name", "")
	if name == "" {
		errorColor.Fprintln(c.out, "Name cannot be empty.")
		return
	}
	fields := splitAndTrim(c.promptString("Fields (comma-separated)", ""))
	if err := c.reg.Add(name, fields); err != nil {
		errorColor.Fprintf(c.out, "Error: %v\n", err)
		return
	}
	successColor.Fprintf(c.out, "Added %q with %d fields.\n", name, len(fields))
}

func (c *Console) pickSource() (string, bool) {
	names := c.reg.List()
	if len(names) == 0 {
		warnColor.Fprintln(c.out, "No alert sources defined.")
		return "", false
	}
	return c.promptChoice("Source (number or name, blank to cancel)", names)
}

func (c *Console) manageItems() {
	name, ok := c.pickSource()
	if !ok {
		return
	}
	for !c.eof {
		headerColor.Fprintf(c.out, "\n--- Items: %s ---\n", name)
		fmt.Fprintln(c.out, "1. List items")
		fmt.Fprintln(c.out, "2. Add item")
		fmt.Fprintln(c.out, "3. Edit item")
		fmt.Fprintln(c.out, "4. Remove item")
		fmt.Fprintln(c.out, "5. Search items")
		fmt.Fprintln(c.out, "6. Back")
		fmt.Fprint(c.out, "Choice: ")
		switch c.readLine() {
		case "1":
			c.listItems(name)
		case "2":
			c.addItem(name)
		case "3":
			c.editItem(name)
		case "4":
			c.removeItem(name)
		case "5":
			c.searchItems(name)
		case "6", "back":
			return
		case "":
			if c.eof {
				return
			}
		default:
			errorColor.Fprintln(c.out, "Invalid choice.")
		}
	}
}

func (c *Console) listItems(name string) {
	items, err := c.reg.Items(name)
	if err != nil {
		errorColor.Fprintf(c.out, "Error: %v\n", err)
		return
	}
	if len(items) == 0 {
		fmt.Fprintln(c.out, "No items.")
		return
	}
	for _, it := range items {
		c.printItem(it)
	}
}

func (c *Console) printItem(it model.Item) {
	parts := make([]string, 0, len(it.Attrs))
	for _, k := range it.AttrKeys() {
		parts = append(parts, fmt.Sprintf("%s=%s", k, it.Attr(k)))
	}
	flags := ""
	if it.AutoGenerated {
		flags += " [auto]"
	}
	if it.RemoveAfterSim {
		flags += " [pending removal]"
	}
	fmt.Fprintf(c.out, "  %s: %s%s\n", it.ID, strings.Join(parts, ", "), flags)
}

func (c *Console) pickItem(name string) (model.Item, bool) {
	items, err := c.reg.Items(name)
	if err != nil {
		errorColor.Fprintf(c.out, "Error: %v\n", err)
		return model.Item{}, false
	}
	if len(items) == 0 {
		fmt.Fprintln(c.out, "No items.")
		return model.Item{}, false
	}
	ids := make([]string, len(items))
	for i, it := range items {
		ids[i] = it.ID
		c.printItem(it)
	}
	id, ok := c.promptChoice("Item (number or id, blank to cancel)", ids)
	if !ok {
		return model.Item{}, false
	}
	for _, it := range items {
		if it.ID == id {
			return it, true
		}
	}
	return model.Item{}, false
}

func (c *Console) addItem(name string) {
	fields, err := c.reg.Fields(name)
	if err != nil {
		errorColor.Fprintf(c.out, "Error: %v\n", err)
		return
	}
	values := make(map[string]string, len(fields))
	for _, f := range fields {
		values[f] = c.promptString(f, "")
	}
	item, err := c.reg.AddItem(name, values)
	if err != nil {
		errorColor.Fprintf(c.out, "Error: %v\n", err)
		return
	}
	successColor.Fprintf(c.out, "Added item %s.\n", item.ID)
}

func (c *Console) editItem(name string) {
	item, ok := c.pickItem(name)
	if !ok {
		return
	}
	fields, err := c.reg.Fields(name)
	if err != nil {
		errorColor.Fprintf(c.out, "Error: %v\n", err)
		return
	}
	values := make(map[string]string, len(fields))
	for _, f := range fields {
		values[f] = c.promptString(f, item.Attr(f))
	}
	if err := c.reg.EditItem(name, item.ID, values); err != nil {
		errorColor.Fprintf(c.out, "Error: %v\n", err)
		return
	}
	successColor.Fprintf(c.out, "Updated %s.\n", item.ID)
}

func (c *Console) removeItem(name string) {
	item, ok := c.pickItem(name)
	if !ok {
		return
	}
	if !c.promptYesNo(fmt.Sprintf("Remove %s?", item.ID), false) {
		return
	}
	if err := c.reg.RemoveItem(name, item.ID); err != nil {
		errorColor.Fprintf(c.out, "Error: %v\n", err)
		return
	}
	successColor.Fprintf(c.out, "Removed %s.\n", item.ID)
}

func (c *Console) searchItems(name string) {
	query := c.promptString("Search", "")
	if query == "" {
		return
	}
	matches, err := c.reg.SearchItems(name, query)
	if err != nil {
		errorColor.Fprintf(c.out, "Error: %v\n", err)
		return
	}
	if len(matches) == 0 {
		fmt.Fprintln(c.out, "No matches.")
		return
	}
	for _, it := range matches {
		c.printItem(it)
	}
}

func (c *Console) manageThresholds() {
	name, ok := c.pickSource()
	if !ok {
		return
	}
	for !c.eof {
		headerColor.Fprintf(c.out, "\n--- Thresholds: %s ---\n", name)
		fmt.Fprintln(c.out, "1. List thresholds")
		fmt.Fprintln(c.out, "2. Set threshold")
		fmt.Fprintln(c.out, "3. Delete threshold")
		fmt.Fprintln(c.out, "4. Back")
		fmt.Fprint(c.out, "Choice: ")
		switch c.readLine() {
		case "1":
			c.listThresholds(name)
		case "2":
			c.setThreshold(name)
		case "3":
			c.deleteThreshold(name)
		case "4", "back":
			return
		case "":
			if c.eof {
				return
			}
		default:
			errorColor.Fprintln(c.out, "Invalid choice.")
		}
	}
}

func (c *Console) listThresholds(name string) {
	thresholds, err := c.reg.Thresholds(name)
	if err != nil {
		errorColor.Fprintf(c.out, "Error: %v\n", err)
		return
	}
	if len(thresholds) == 0 {
		fmt.Fprintln(c.out, "No thresholds.")
		return
	}
	keys := make([]string, 0, len(thresholds))
	for k := range thresholds {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		fmt.Fprintf(c.out, "  %s: %s\n", k, thresholds[k].Describe())
	}
}

func (c *Console) setThreshold(name string) {
	fields, err := c.reg.Fields(name)
	if err != nil {
		errorColor.Fprintf(c.out, "Error: %v\n", err)
		return
	}
	field, ok := c.promptChoice("Field (number or name, blank to cancel)", fields)
	if !ok {
		return
	}
	var rule model.Rule
	switch strings.ToLower(c.promptString("Rule type (range, enum, exact)", "")) {
	case "range":
		minS := c.promptString("Min", "")
		maxS := c.promptString("Max", "")
		if _, err := strconv.ParseFloat(minS, 64); err != nil {
			errorColor.Fprintln(c.out, "Min must be a number.")
			return
		}
		if _, err := strconv.ParseFloat(maxS, 64); err != nil {
			errorColor.Fprintln(c.out, "Max must be a number.")
			return
		}
		rule = model.RangeRule(json.Number(minS), json.Number(maxS))
	case "enum":
		allowed := splitAndTrim(c.promptString("Allowed values (comma-separated)", ""))
		if len(allowed) == 0 {
			errorColor.Fprintln(c.out, "At least one value required.")
			return
		}
		rule = model.EnumRule(allowed)
	case "exact":
		v := c.promptString("Exact value", "")
		if v == "" {
			errorColor.Fprintln(c.out, "Value cannot be empty.")
			return
		}
		rule = model.ExactRule(scalarValue(v))
	default:
		errorColor.Fprintln(c.out, "Unknown rule type.")
		return
	}
	if err := c.reg.SetThreshold(name, field, rule); err != nil {
		errorColor.Fprintf(c.out, "Error: %v\n", err)
		return
	}
	successColor.Fprintf(c.out, "Set %s threshold on %q.\n", rule.KindName(), field)
}

func (c *Console) deleteThreshold(name string) {
	thresholds, err := c.reg.Thresholds(name)
	if err != nil {
		errorColor.Fprintf(c.out, "Error: %v\n", err)
		return
	}
	if len(thresholds) == 0 {
		fmt.Fprintln(c.out, "No thresholds.")
		return
	}
	keys := make([]string, 0, len(thresholds))
	for k := range thresholds {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	field, ok := c.promptChoice("Field (number or name, blank to cancel)", keys)
	if !ok {
		return
	}
	if err := c.reg.DeleteThreshold(name, field); err != nil {
		errorColor.Fprintf(c.out, "Error: %v\n", err)
		return
	}
	successColor.Fprintf(c.out, "Deleted threshold on %q.\n", field)
}

func (c *Console) manageSettings() {
	name, ok := c.pickSource()
	if !ok {
		return
	}
	for !c.eof {
		headerColor.Fprintf(c.out, "\n--- Settings: %s ---\n", name)
		fmt.Fprintln(c.out, "1. List settings")
		fmt.Fprintln(c.out, "2. Set setting")
		fmt.Fprintln(c.out, "3. Delete setting")
		fmt.Fprintln(c.out, "4. Back")
		fmt.Fprint(c.out, "Choice: ")
		switch c.readLine() {
		case "1":
			c.listSettings(name)
		case "2":
			c.setSetting(name)
		case "3":
			c.deleteSetting(name)
		case "4", "back":
			return
		case "":
			if c.eof {
				return
			}
		default:
			errorColor.Fprintln(c.out, "Invalid choice.")
		}
	}
}

func (c *Console) listSettings(name string) {
	settings, err := c.reg.Settings(name)
	if err != nil {
		errorColor.Fprintf(c.out, "Error: %v\n", err)
		return
	}
	if len(settings) == 0 {
		fmt.Fprintln(c.out, "No settings.")
		return
	}
	keys := make([]string, 0, len(settings))
	for k := range settings {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		fmt.Fprintf(c.out, "  %s = %s (%s)\n", k, settings[k].String(), settings[k].KindName())
	}
}

func (c *Console) setSetting(name string) {
	settings, err := c.reg.Settings(name)
	if err != nil {
		errorColor.Fprintf(c.out, "Error: %v\n", err)
		return
	}
	key := c.promptString("Setting key", "")
	if key == "" {
		errorColor.Fprintln(c.out, "Key cannot be empty.")
		return
	}
	var value model.SettingValue
	if prior, ok := settings[key]; ok {
		raw := c.promptString(fmt.Sprintf("Value (%s)", prior.KindName()), prior.String())
		coerced, coercedOK := model.Coerce(prior, raw)
		if !coercedOK {
			warnColor.Fprintf(c.out, "Could not read %q as %s, storing as string.\n", raw, prior.KindName())
		}
		value = coerced
	} else {
		raw := c.promptString("Value", "")
		if raw == "" {
			errorColor.Fprintln(c.out, "Value cannot be empty.")
			return
		}
		value = scalarValue(raw)
	}
	if err := c.reg.SetSetting(name, key, value); err != nil {
		errorColor.Fprintf(c.out, "Error: %v\n", err)
		return
	}
	successColor.Fprintf(c.out, "Set %q = %s.\n", key, value.String())
}

func (c *Console) deleteSetting(name string) {
	settings, err := c.reg.Settings(name)
	if err != nil {
		errorColor.Fprintf(c.out, "Error: %v\n", err)
		return
	}
	if len(settings) == 0 {
		fmt.Fprintln(c.out, "No settings.")
		return
	}
	keys := make([]string, 0, len(settings))
	for k := range settings {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	key, ok := c.promptChoice("Setting (number or key, blank to cancel)", keys)
	if !ok {
		return
	}
	if err := c.reg.DeleteSetting(name, key); err != nil {
		errorColor.Fprintf(c.out, "Error: %v\n", err)
		return
	}
	successColor.Fprintf(c.out, "Deleted %q.\n", key)
}

// scalarValue types a fresh user-entered value: number, then boolean, else
// string.
func scalarValue(raw string) model.SettingValue {
	if v, ok := model.Coerce(model.NumberValue(json.Number("0")), raw); ok {
		return v
	}
	if v, ok := model.Coerce(model.BoolValue(false), raw); ok {
		return v
	}
	return model.StringValue(raw)
}

func (c *Console) simulateMenu(ctx context.Context) {
	names := c.reg.List()
	if len(names) == 0 {
		warnColor.Fprintln(c.out, "No alert sources defined.")
		return
	}
	headerColor.Fprintln(c.out, "\n--- Simulate Event ---")
	eventType, ok := c.promptChoice("Event type (number or name, blank to cancel)", names)
	if !ok {
		return
	}
	manual := c.promptYesNo("Enter details manually?", false)
	env, err := c.orch.Simulate(ctx, eventType, manual)
	if err != nil {
		errorColor.Fprintf(c.out, "Error: %v\n", err)
		return
	}
	successColor.Fprintf(c.out, "Event %s emitted.\n", env.EventID)
}

func (c *Console) automationMenu(ctx context.Context) {
	headerColor.Fprintln(c.out, "\n--- Run Automation ---")
	count := c.promptInt("Number of events", 10)
	if count <= 0 {
		errorColor.Fprintln(c.out, "Count must be positive.")
		return
	}
	delay := c.promptFloatSeconds("Delay between events (seconds)", 2)
	eventType := ""
	if !c.promptYesNo("Random event types?", true) {
		picked, ok := c.promptChoice("Event type (number or name, blank to cancel)", c.reg.List())
		if !ok {
			return
		}
		eventType = picked
	}
	sent, failed, err := c.orch.Automate(ctx, count, delay, eventType)
	if err != nil {
		errorColor.Fprintf(c.out, "Error: %v\n", err)
	}
	successColor.Fprintf(c.out, "Automation finished: %d sent, %d failed.\n", sent, failed)
}

func (c *Console) showStats() {
	headerColor.Fprintln(c.out, "\n--- Session Stats ---")
	byType := c.stats.ByType()
	if len(byType) == 0 {
		fmt.Fprintln(c.out, "No events this session.")
		return
	}
	keys := make([]string, 0, len(byType))
	for k := range byType {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		st := byType[k]
		fmt.Fprintf(c.out, "  %-22s sent %-4d failed %-4d last %s\n",
			k, st.Sent, st.Failed, st.Last.Format("15:04:05"))
	}
	sent, failed := c.stats.Totals()
	fmt.Fprintf(c.out, "Total: %d sent, %d failed.\n", sent, failed)
}

func (c *Console) configureSink() {
	headerColor.Fprintln(c.out, "\n--- Configure Sink ---")
	current := c.apiURL
	if current == "" {
		current = "(console only)"
	}
	fmt.Fprintf(c.out, "Current API base URL: %s\n", current)
	url := c.promptString("New API base URL (blank for console only)", "")
	c.apiURL = url
	if c.buildSinks != nil {
		c.orch.SetSinks(c.buildSinks(url))
	}
	if url == "" {
		successColor.Fprintln(c.out, "Events will print to the console only.")
	} else {
		successColor.Fprintf(c.out, "Events will be posted to %s/events.\n", strings.TrimRight(url, "/"))
	}
	if c.manager == nil {
		return
	}
	if !c.promptYesNo("Persist to the config file?", false) {
		return
	}
	cfg := c.manager.Get()
	cfg.Sink.APIBaseURL = url
	if err := c.manager.Update(cfg); err != nil {
		errorColor.Fprintf(c.out, "Error: %v\n", err)
		return
	}
	successColor.Fprintf(c.out, "Saved to %s.\n", c.manager.Path())
}
