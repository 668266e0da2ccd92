package bot

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"topupbot/internal/model"
	"topupbot/internal/store"
)

const internalErrorReply = "⚠ Internal Error Occurred"

const helpText = `🤖 Available Commands:
/ping
/categories
/packages Category
/addpackage Category|Name|Price
/editpackage Category|ID|Name|Price
/deletepackage Category|ID
/editpayment Method|Number|Description
/registered
/orders
/complete OrderID
/fail OrderID`

// Dispatcher executes parsed commands against the store. Each inbound
// message is one independent unit of work producing exactly one reply; no
// state is shared across messages beyond the immutable category registry.
type Dispatcher struct {
	store    store.Client
	registry model.Registry
	log      *zap.Logger
}

func NewDispatcher(st store.Client, registry model.Registry, log *zap.Logger) *Dispatcher {
	return &Dispatcher{store: st, registry: registry, log: log}
}

// Handle parses and executes one message, always returning exactly one
// reply. Internal failures are logged and surfaced only as the generic
// notice.
func (d *Dispatcher) Handle(ctx context.Context, text string) string {
	cmd := Parse(text)

	reply, err := d.run(ctx, cmd)
	if err == nil {
		return reply
	}

	var uf userFacing
	if errors.As(err, &uf) {
		return uf.Error()
	}

	d.log.Error("command failed", zap.Int("kind", int(cmd.Kind)), zap.Error(err))
	return internalErrorReply
}

func (d *Dispatcher) run(ctx context.Context, cmd Command) (string, error) {
	switch cmd.Kind {
	case KindPing:
		return "🏓 Pong! Bot is running.", nil
	case KindCategories:
		return d.listCategories(), nil
	case KindPackages:
		return d.listPackages(ctx, cmd.Args)
	case KindAddPackage:
		if cmd.Bulk {
			return d.addPackagesBulk(ctx, cmd)
		}
		return d.addPackage(ctx, cmd.Args)
	case KindEditPackage:
		return d.editPackage(ctx, cmd.Args)
	case KindDeletePackage:
		return d.deletePackage(ctx, cmd.Args)
	case KindEditPayment:
		return d.editPayment(ctx, cmd.Args)
	case KindRegistered:
		return d.listRegistered(ctx)
	case KindOrders:
		return d.listPendingOrders(ctx)
	case KindComplete:
		return d.setOrderStatus(ctx, cmd.Args, model.StatusCompleted, "/complete OrderID")
	case KindFail:
		return d.setOrderStatus(ctx, cmd.Args, model.StatusFailed, "/fail OrderID")
	case KindHelp:
		return helpText, nil
	}
	return helpText, nil
}

func (d *Dispatcher) checkCategory(category string) error {
	if !d.registry.Valid(category) {
		return validationErr("Unknown category: %s. Use /categories to see the list.", category)
	}
	return nil
}

func (d *Dispatcher) listCategories() string {
	var b strings.Builder
	b.WriteString("📂 Categories:\n\n")
	for i, name := range d.registry.Names() {
		fmt.Fprintf(&b, "%d. %s\n", i+1, name)
	}
	return b.String()
}

func (d *Dispatcher) listPackages(ctx context.Context, category string) (string, error) {
	if category == "" {
		return "", usageErr("/packages Category")
	}
	if err := d.checkCategory(category); err != nil {
		return "", err
	}

	entries, err := d.store.GetSubtree(ctx, store.Join(model.PathPackages, category))
	if err != nil {
		return "", err
	}
	if len(entries) == 0 {
		return fmt.Sprintf("⚠ No packages found in %s.", category), nil
	}

	var b strings.Builder
	fmt.Fprintf(&b, "📦 Packages in %s:\n\n", category)
	for i, e := range entries {
		var pkg model.Package
		if err := json.Unmarshal(e.Value, &pkg); err != nil {
			return "", fmt.Errorf("decode package %s: %w", e.Key, err)
		}
		status := pkg.Status
		if status == "" {
			status = model.StatusActive
		}
		fmt.Fprintf(&b, "%d. %s - ৳%s (%s)\nID: %s\n\n", i+1, pkg.Name, formatPrice(pkg.Price), status, e.Key)
	}
	return b.String(), nil
}

func (d *Dispatcher) addPackage(ctx context.Context, args string) (string, error) {
	parts, ok := splitPipe(args, 3)
	if !ok {
		return "", usageErr("/addpackage Category|Name|Price")
	}
	category, name := parts[0], parts[1]
	price, ok := parsePrice(parts[2])
	if !ok {
		return "", usageErr("/addpackage Category|Name|Price")
	}
	if err := d.checkCategory(category); err != nil {
		return "", err
	}

	pkg := model.Package{
		Name:      name,
		Price:     price,
		Status:    model.StatusActive,
		CreatedAt: timestamp(),
	}
	if _, err := d.store.Push(ctx, store.Join(model.PathPackages, category), pkg); err != nil {
		return "", err
	}
	return fmt.Sprintf("✅ Package Added: %s (৳%s)", name, formatPrice(price)), nil
}

// addPackagesBulk ingests one Name|Price record per line under the category
// named on the first line. Malformed lines are skipped silently; each record
// is independent, so a store failure partway through leaves the ones already
// written and is reported through the final count only.
func (d *Dispatcher) addPackagesBulk(ctx context.Context, cmd Command) (string, error) {
	category := cmd.Args
	if category == "" {
		return "", usageErr("/addpackage Category, then one Name|Price per line")
	}
	if err := d.checkCategory(category); err != nil {
		return "", err
	}

	path := store.Join(model.PathPackages, category)
	now := timestamp()
	added := 0
	for _, line := range cmd.Lines {
		parts, ok := splitPipe(line, 2)
		if !ok {
			continue
		}
		price, ok := parsePrice(parts[1])
		if !ok {
			continue
		}
		pkg := model.Package{
			Name:      parts[0],
			Price:     price,
			Status:    model.StatusActive,
			CreatedAt: now,
		}
		if _, err := d.store.Push(ctx, path, pkg); err != nil {
			d.log.Warn("bulk add aborted", zap.String("category", category), zap.Error(err))
			break
		}
		added++
	}
	return fmt.Sprintf("✅ %d packages added to %s.", added, category), nil
}

func (d *Dispatcher) editPackage(ctx context.Context, args string) (string, error) {
	parts, ok := splitPipe(args, 4)
	if !ok {
		return "", usageErr("/editpackage Category|ID|Name|Price")
	}
	category, id, name := parts[0], parts[1], parts[2]
	price, ok := parsePrice(parts[3])
	if !ok {
		return "", validationErr("Invalid price: %s", parts[3])
	}
	if err := d.checkCategory(category); err != nil {
		return "", err
	}
	if err := d.checkPackageExists(ctx, category, id); err != nil {
		return "", err
	}

	fields := map[string]interface{}{
		"name":      name,
		"price":     price,
		"updatedAt": timestamp(),
	}
	if err := d.store.Update(ctx, store.Join(model.PathPackages, category, id), fields); err != nil {
		return "", err
	}
	return fmt.Sprintf("✅ Package Updated: %s (৳%s)", name, formatPrice(price)), nil
}

func (d *Dispatcher) deletePackage(ctx context.Context, args string) (string, error) {
	parts, ok := splitPipe(args, 2)
	if !ok {
		return "", usageErr("/deletepackage Category|ID")
	}
	category, id := parts[0], parts[1]
	if err := d.checkCategory(category); err != nil {
		return "", err
	}
	if err := d.checkPackageExists(ctx, category, id); err != nil {
		return "", err
	}

	if err := d.store.Delete(ctx, store.Join(model.PathPackages, category, id)); err != nil {
		return "", err
	}
	return fmt.Sprintf("❌ Package %s deleted from %s.", id, category), nil
}

// checkPackageExists guards edit/delete: the read precedes the mutation, so
// a miss aborts with nothing written.
func (d *Dispatcher) checkPackageExists(ctx context.Context, category, id string) error {
	entries, err := d.store.GetSubtree(ctx, store.Join(model.PathPackages, category))
	if err != nil {
		return err
	}
	for _, e := range entries {
		if e.Key == id {
			return nil
		}
	}
	return notFoundErr("Package %s not found in %s.", id, category)
}

func (d *Dispatcher) editPayment(ctx context.Context, args string) (string, error) {
	parts, ok := splitPipe(args, 3)
	if !ok {
		return "", usageErr("/editpayment Method|Number|Description")
	}
	method, number, description := parts[0], parts[1], parts[2]
	if !model.ValidPaymentMethod(method) {
		return "", validationErr("Unknown payment method: %s. Allowed: %s.",
			method, strings.Join(model.PaymentMethodNames, ", "))
	}

	// Full overwrite, not a merge: stale fields must not survive.
	pm := model.PaymentMethod{
		Number:      number,
		Description: description,
		UpdatedAt:   timestamp(),
	}
	if err := d.store.Set(ctx, store.Join(model.PathPaymentMethods, method), pm); err != nil {
		return "", err
	}
	return fmt.Sprintf("✅ %s updated:\nNumber: %s\n%s", method, number, description), nil
}

func (d *Dispatcher) listRegistered(ctx context.Context) (string, error) {
	entries, err := d.store.GetSubtree(ctx, model.PathUsers)
	if err != nil {
		return "", err
	}
	if len(entries) == 0 {
		return "⚠ No registered users found.", nil
	}

	var b strings.Builder
	b.WriteString("👥 Registered Users:\n\n")
	for i, e := range entries {
		var u model.User
		if err := json.Unmarshal(e.Value, &u); err != nil {
			return "", fmt.Errorf("decode user %s: %w", e.Key, err)
		}
		fmt.Fprintf(&b, "%d. %s | %s\n", i+1, u.Username, u.Phone)
	}
	return b.String(), nil
}

func (d *Dispatcher) listPendingOrders(ctx context.Context) (string, error) {
	entries, err := d.store.GetSubtree(ctx, model.PathTopupRequests)
	if err != nil {
		return "", err
	}

	var b strings.Builder
	b.WriteString("🧾 Pending Orders:\n\n")
	n := 0
	for _, e := range entries {
		var o model.Order
		if err := json.Unmarshal(e.Value, &o); err != nil {
			return "", fmt.Errorf("decode order %s: %w", e.Key, err)
		}
		if !strings.EqualFold(o.Status, model.StatusPending) {
			continue
		}
		n++
		fmt.Fprintf(&b, "%d. Order %s\nUser: %s\nPackage: %s\nAmount: ৳%s\nMethod: %s\n\n",
			n, e.Key, o.Username, o.Package, formatPrice(o.Amount), o.Method)
	}
	if n == 0 {
		return "⚠ No pending orders.", nil
	}
	return b.String(), nil
}

// setOrderStatus is a blind one-way transition: no existence check, no
// validation of the prior status. Completing an unknown order just creates
// its status field.
func (d *Dispatcher) setOrderStatus(ctx context.Context, orderID, status, usage string) (string, error) {
	orderID = strings.TrimSpace(orderID)
	if orderID == "" {
		return "", usageErr(usage)
	}

	fields := map[string]interface{}{"status": status}
	if err := d.store.Update(ctx, store.Join(model.PathTopupRequests, orderID), fields); err != nil {
		return "", err
	}
	return fmt.Sprintf("✅ Order %s marked %s.", orderID, status), nil
}

func timestamp() string {
	return time.Now().UTC().Format(time.RFC3339)
}
