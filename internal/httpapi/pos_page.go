package httpapi

import "html/template"

// posPageTmpl renders the single-page POS screen. The page is a thin input
// adapter: every click or edit calls the invoice API and redraws the table
// from the returned snapshot, so the browser never computes a total itself.
var posPageTmpl = template.Must(template.New("pos").Parse(`<!doctype html>
<html>
<head>
<meta charset="utf-8">
<title>Zafar POS</title>
<style>
  body { font-family: sans-serif; margin: 1.5rem; }
  .layout { display: flex; gap: 2rem; }
  .picker { width: 280px; }
  .picker select { width: 100%; margin-bottom: 1rem; padding: 0.4rem; }
  #items { list-style: none; padding: 0; }
  #items li { cursor: pointer; padding: 0.3rem 0.4rem; border-bottom: 1px solid #eee; }
  #items li:hover { background: #f4f4f4; }
  table { border-collapse: collapse; min-width: 560px; }
  th, td { border-bottom: 1px solid #ddd; padding: 0.4rem 0.8rem; text-align: left; }
  tfoot td { font-weight: bold; }
  input[type=number] { width: 6rem; }
</style>
</head>
<body>
<h2>Zafar POS</h2>
<div class="layout">
  <div class="picker">
    <select id="categories">
      <option selected disabled>Select Category</option>
      {{range .Categories}}<option value="{{.ID}}">{{.Title}}</option>
      {{end}}
    </select>
    <select id="subCategories"></select>
    <ul id="items"></ul>
  </div>
  <div>
    <table>
      <thead>
        <tr><th>Item Name</th><th>Quantity</th><th>Price</th><th>Total</th><th></th></tr>
      </thead>
      <tbody id="tblBody"></tbody>
      <tfoot>
        <tr><td></td><td></td><td>Grand Total:</td><td id="gTotal">0.00</td><td></td></tr>
        <tr><td></td><td></td>
          <td>Discount: <input type="number" id="discPer" value="0" min="0" max="100" step="0.5"></td>
          <td id="disc">0.00</td><td></td>
        </tr>
        <tr><td></td><td></td><td>Net Payable:</td><td id="netPayable">0.00</td><td></td></tr>
      </tfoot>
    </table>
  </div>
</div>

<script>
function money(cents) { return (cents / 100).toFixed(2); }

async function getJSON(url, opts) {
  const res = await fetch(url, Object.assign({credentials: 'same-origin'}, opts));
  const body = await res.json();
  if (!res.ok) { throw new Error(body.error || res.statusText); }
  return body;
}

function render(invoice) {
  const tbody = document.getElementById('tblBody');
  tbody.innerHTML = '';
  for (const line of invoice.lines) {
    const tr = document.createElement('tr');

    const name = document.createElement('td');
    name.textContent = line.name;
    tr.appendChild(name);

    const qtyCell = document.createElement('td');
    const qty = document.createElement('input');
    qty.type = 'number';
    qty.min = '1';
    qty.value = line.quantity;
    qty.addEventListener('change', () => editLine(line.id, {quantity: parseInt(qty.value, 10)}));
    qtyCell.appendChild(qty);
    tr.appendChild(qtyCell);

    const priceCell = document.createElement('td');
    const price = document.createElement('input');
    price.type = 'number';
    price.min = '0';
    price.step = '0.01';
    price.value = money(line.unit_price_cents);
    price.addEventListener('change', () => editLine(line.id, {unit_price_cents: Math.round(parseFloat(price.value) * 100)}));
    priceCell.appendChild(price);
    tr.appendChild(priceCell);

    const total = document.createElement('td');
    total.textContent = money(line.line_total_cents);
    tr.appendChild(total);

    const removeCell = document.createElement('td');
    const remove = document.createElement('button');
    remove.textContent = 'x';
    remove.addEventListener('click', () => removeLine(line.id));
    removeCell.appendChild(remove);
    tr.appendChild(removeCell);

    tbody.appendChild(tr);
  }

  document.getElementById('gTotal').textContent = money(invoice.grand_total_cents);
  document.getElementById('disc').textContent = money(invoice.discount_cents);
  document.getElementById('netPayable').textContent = money(invoice.net_payable_cents);
}

async function addLine(itemId) {
  const body = await getJSON('/invoice/lines', {
    method: 'POST',
    headers: {'Content-Type': 'application/json'},
    body: JSON.stringify({item_id: itemId}),
  });
  render(body.invoice);
}

async function editLine(lineId, patch) {
  try {
    const body = await getJSON('/invoice/lines/' + lineId, {
      method: 'PATCH',
      headers: {'Content-Type': 'application/json'},
      body: JSON.stringify(patch),
    });
    render(body.invoice);
  } catch (err) {
    // Rejected edits leave the invoice unchanged; redraw the prior state.
    const body = await getJSON('/invoice');
    render(body.invoice);
  }
}

async function removeLine(lineId) {
  const body = await getJSON('/invoice/lines/' + lineId, {method: 'DELETE'});
  render(body.invoice);
}

document.getElementById('categories').addEventListener('change', async (ev) => {
  const subs = await getJSON('/subCategories?category_id=' + ev.target.value);
  const select = document.getElementById('subCategories');
  select.innerHTML = '<option selected disabled>Select Sub-Category</option>';
  for (const sub of subs) {
    const opt = document.createElement('option');
    opt.value = sub.id;
    opt.textContent = sub.title;
    select.appendChild(opt);
  }
  document.getElementById('items').innerHTML = '';
});

document.getElementById('subCategories').addEventListener('change', async (ev) => {
  const items = await getJSON('/items?subcategory_id=' + ev.target.value);
  const list = document.getElementById('items');
  list.innerHTML = '';
  for (const item of items) {
    const li = document.createElement('li');
    li.textContent = '+ ' + item.title + ' (' + money(item.price_cents) + ')';
    li.addEventListener('click', () => addLine(item.id));
    list.appendChild(li);
  }
});

document.getElementById('discPer').addEventListener('change', async (ev) => {
  try {
    const body = await getJSON('/invoice/discount', {
      method: 'POST',
      headers: {'Content-Type': 'application/json'},
      body: JSON.stringify({percent: parseFloat(ev.target.value) || 0}),
    });
    render(body.invoice);
  } catch (err) {
    const body = await getJSON('/invoice');
    render(body.invoice);
    ev.target.value = body.invoice.discount_percent;
  }
});
</script>
</body>
</html>
`))
