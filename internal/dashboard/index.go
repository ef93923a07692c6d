package dashboard

import "net/http"

const indexHTML = `<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>Paperlens Dashboard</title>
<style>
body { font-family: sans-serif; max-width: 52rem; margin: 2rem auto; padding: 0 1rem; }
fieldset { margin-bottom: 1rem; border: 1px solid #ccc; }
label { display: inline-block; min-width: 7rem; }
pre { background: #f5f5f5; padding: 1rem; overflow-x: auto; }
</style>
</head>
<body>
<h1>Paperlens</h1>
<p>Upload a research-paper metadata CSV, then explore filtered summaries, charts, and exports.</p>

<fieldset>
<legend>Upload</legend>
<form id="upload">
<label>CSV file</label><input type="file" name="file" accept=".csv,.tsv" required><br>
<label>Sample rows</label><input type="number" name="max_rows" min="0" value="10000"><br>
<button type="submit">Upload</button>
</form>
</fieldset>

<fieldset>
<legend>Explore</legend>
<form id="explore">
<label>Year from</label><input type="number" name="year_from" min="1990" max="2024"><br>
<label>Year to</label><input type="number" name="year_to" min="1990" max="2024"><br>
<label>Journal</label><input type="text" name="journal"><br>
<label>Top N</label><input type="number" name="top_n" min="1" value="10"><br>
<button type="submit">Summary</button>
<button type="button" id="charts">Charts</button>
<button type="button" id="export">Export CSV</button>
</form>
</fieldset>

<pre id="out">No dataset uploaded yet.</pre>

<script>
let datasetID = null;
const out = document.getElementById('out');

document.getElementById('upload').addEventListener('submit', async (e) => {
  e.preventDefault();
  const resp = await fetch('/api/v1/datasets', { method: 'POST', body: new FormData(e.target) });
  const body = await resp.json();
  if (!resp.ok) { out.textContent = body.error; return; }
  datasetID = body.id;
  out.textContent = JSON.stringify(body, null, 2);
});

function query(form) {
  const params = new URLSearchParams();
  for (const [k, v] of new FormData(form)) if (v) params.set(k, v);
  return params.toString();
}

document.getElementById('explore').addEventListener('submit', async (e) => {
  e.preventDefault();
  if (!datasetID) { out.textContent = 'Upload a dataset first.'; return; }
  const resp = await fetch('/api/v1/datasets/' + datasetID + '/summary?' + query(e.target));
  out.textContent = JSON.stringify(await resp.json(), null, 2);
});

document.getElementById('charts').addEventListener('click', () => {
  if (!datasetID) { out.textContent = 'Upload a dataset first.'; return; }
  window.open('/api/v1/datasets/' + datasetID + '/charts?' + query(document.getElementById('explore')));
});

document.getElementById('export').addEventListener('click', () => {
  if (!datasetID) { out.textContent = 'Upload a dataset first.'; return; }
  window.location = '/api/v1/datasets/' + datasetID + '/export?' + query(document.getElementById('explore'));
});
</script>
</body>
</html>
`

// Index serves the single-page upload/filter UI.
func (h *Handler) Index(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write([]byte(indexHTML))
}
